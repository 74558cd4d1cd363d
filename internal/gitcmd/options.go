package gitcmd

import (
	"strconv"
)

const (
	fetchSubcommandConstant        = "fetch"
	mergeSubcommandConstant        = "merge"
	rebaseSubcommandConstant       = "rebase"
	cloneSubcommandConstant        = "clone"
	checkoutSubcommandConstant     = "checkout"
	pushSubcommandConstant         = "push"
	pullSubcommandConstant         = "pull"
	addSubcommandConstant          = "add"
	commitSubcommandConstant       = "commit"
	diffSubcommandConstant         = "diff"
	statusSubcommandConstant       = "status"
	branchSubcommandConstant       = "branch"
	configSubcommandConstant       = "config"
	remoteSubcommandConstant       = "remote"
	revParseSubcommandConstant     = "rev-parse"
	pruneFlagConstant              = "--prune"
	allFlagConstant                = "--all"
	squashFlagConstant             = "--squash"
	noSquashFlagConstant           = "--no-squash"
	editFlagConstant               = "--edit"
	noEditFlagConstant             = "--no-edit"
	strategyFlagPrefixConstant     = "--strategy="
	strategyOptionPrefixConstant   = "--strategy-option="
	quietFlagConstant              = "--quiet"
	verboseFlagConstant            = "--verbose"
	ontoFlagConstant               = "--onto"
	originFlagConstant             = "--origin"
	branchFlagConstant             = "--branch"
	depthFlagConstant              = "--depth"
	trackFlagConstant              = "--track"
	setUpstreamFlagConstant        = "--set-upstream"
	forceFlagConstant              = "--force"
	messageFlagConstant            = "-m"
	nameOnlyFlagConstant           = "--name-only"
	stagedFlagConstant             = "--staged"
	remotesFlagConstant            = "--remotes"
	getFlagConstant                = "--get"
	remoteAddSubcommandConstant    = "add"
	remoteSetURLSubcommandConstant = "set-url"
	createBranchFlagConstant       = "-b"
	forceDeleteBranchFlagConstant  = "-D"
	headReferenceConstant          = "HEAD"
	defaultRemoteNameConstant      = "origin"
	remoteBranchDeletionPrefix     = ":"
)

// DiffWhitespaceMode selects which whitespace differences a diff ignores.
type DiffWhitespaceMode string

// Supported whitespace handling modes.
const (
	DiffWhitespaceRespect      DiffWhitespaceMode = ""
	DiffWhitespaceIgnoreAll    DiffWhitespaceMode = "--ignore-all-space"
	DiffWhitespaceIgnoreChange DiffWhitespaceMode = "--ignore-space-change"
	DiffWhitespaceIgnoreAtEOL  DiffWhitespaceMode = "--ignore-space-at-eol"
)

// FetchOptions configures a fetch invocation.
type FetchOptions struct {
	Prune bool
	All   bool
}

// MergeOptions configures a merge invocation.
//
// Squash and Edit are tri-state: nil omits the flag entirely, while explicit
// true and false map to the positive and negated flag forms.
type MergeOptions struct {
	Squash          *bool
	Edit            *bool
	StrategyOptions []string
	Quiet           bool
	Messages        []string
}

// RebaseOptions configures a rebase invocation.
type RebaseOptions struct {
	Strategy        string
	StrategyOptions []string
	Quiet           bool
	Verbose         bool
	Onto            string
	Upstream        string
	Branch          string
}

// CloneOptions configures a clone invocation.
type CloneOptions struct {
	Quiet     bool
	Verbose   bool
	Origin    string
	Branch    string
	Depth     int
	Directory string
}

// CheckoutOptions configures a checkout invocation.
//
// A non-empty Track names the remote whose branch of the same name should be
// tracked; the branch reference is emitted as "remote/branch" after --track.
type CheckoutOptions struct {
	Track string
}

// PushOptions configures a push invocation.
//
// SetUpstream requests --set-upstream with the default remote; a non-empty
// SetUpstreamRemote requests it for that remote. When upstream configuration
// is requested and BranchName is empty, the current branch is resolved with a
// preceding branch query before the push argument vector is built.
type PushOptions struct {
	SetUpstream       bool
	SetUpstreamRemote string
	BranchName        string
	Force             bool
}

func (options PushOptions) upstreamRequested() bool {
	return options.SetUpstream || len(options.SetUpstreamRemote) > 0
}

func (options PushOptions) upstreamRemoteName() string {
	if len(options.SetUpstreamRemote) > 0 {
		return options.SetUpstreamRemote
	}
	return defaultRemoteNameConstant
}

// DiffOptions configures a diff invocation.
type DiffOptions struct {
	Commit1    string
	Commit2    string
	NameOnly   bool
	Staged     bool
	Whitespace DiffWhitespaceMode
}

// FetchArguments renders the argument vector for a fetch invocation.
func FetchArguments(options FetchOptions) []string {
	arguments := []string{fetchSubcommandConstant}
	if options.Prune {
		arguments = append(arguments, pruneFlagConstant)
	}
	if options.All {
		arguments = append(arguments, allFlagConstant)
	}
	return arguments
}

// MergeArguments renders the argument vector for a merge invocation. Flag
// order is fixed so identical options always produce identical vectors.
func MergeArguments(options MergeOptions, references ...string) []string {
	arguments := []string{mergeSubcommandConstant}
	if options.Squash != nil {
		if *options.Squash {
			arguments = append(arguments, squashFlagConstant)
		} else {
			arguments = append(arguments, noSquashFlagConstant)
		}
	}
	if options.Edit != nil {
		if *options.Edit {
			arguments = append(arguments, editFlagConstant)
		} else {
			arguments = append(arguments, noEditFlagConstant)
		}
	}
	for _, strategyOption := range options.StrategyOptions {
		arguments = append(arguments, strategyOptionPrefixConstant+strategyOption)
	}
	if options.Quiet {
		arguments = append(arguments, quietFlagConstant)
	}
	for _, message := range options.Messages {
		arguments = append(arguments, messageFlagConstant, message)
	}
	arguments = append(arguments, references...)
	return arguments
}

// RebaseArguments renders the argument vector for a rebase invocation.
func RebaseArguments(options RebaseOptions) []string {
	arguments := []string{rebaseSubcommandConstant}
	if len(options.Strategy) > 0 {
		arguments = append(arguments, strategyFlagPrefixConstant+options.Strategy)
	}
	for _, strategyOption := range options.StrategyOptions {
		arguments = append(arguments, strategyOptionPrefixConstant+strategyOption)
	}
	if options.Quiet {
		arguments = append(arguments, quietFlagConstant)
	}
	if options.Verbose {
		arguments = append(arguments, verboseFlagConstant)
	}
	if len(options.Onto) > 0 {
		arguments = append(arguments, ontoFlagConstant, options.Onto)
	}
	if len(options.Upstream) > 0 {
		arguments = append(arguments, options.Upstream)
	}
	if len(options.Branch) > 0 {
		arguments = append(arguments, options.Branch)
	}
	return arguments
}

// CloneArguments renders the argument vector for a clone invocation.
func CloneArguments(repositoryURL string, options CloneOptions) []string {
	arguments := []string{cloneSubcommandConstant}
	if options.Quiet {
		arguments = append(arguments, quietFlagConstant)
	}
	if options.Verbose {
		arguments = append(arguments, verboseFlagConstant)
	}
	if len(options.Origin) > 0 {
		arguments = append(arguments, originFlagConstant, options.Origin)
	}
	if len(options.Branch) > 0 {
		arguments = append(arguments, branchFlagConstant, options.Branch)
	}
	if options.Depth > 0 {
		arguments = append(arguments, depthFlagConstant, strconv.Itoa(options.Depth))
	}
	arguments = append(arguments, repositoryURL)
	if len(options.Directory) > 0 {
		arguments = append(arguments, options.Directory)
	}
	return arguments
}

// CheckoutArguments renders the argument vector for a checkout invocation.
func CheckoutArguments(refIdentifier string, options CheckoutOptions) []string {
	arguments := []string{checkoutSubcommandConstant}
	if len(options.Track) > 0 {
		arguments = append(arguments, trackFlagConstant, options.Track+pathSeparatorConstant+refIdentifier)
		return arguments
	}
	arguments = append(arguments, refIdentifier)
	return arguments
}

// PushArguments renders the argument vector for a push invocation.
func PushArguments(options PushOptions) []string {
	arguments := []string{pushSubcommandConstant}
	if options.upstreamRequested() {
		arguments = append(arguments, setUpstreamFlagConstant, options.upstreamRemoteName(), options.BranchName)
	}
	if options.Force {
		arguments = append(arguments, forceFlagConstant)
	}
	return arguments
}

// DiffArguments renders the argument vector for a diff invocation.
func DiffArguments(options DiffOptions) []string {
	arguments := []string{diffSubcommandConstant}
	if len(options.Commit1) > 0 {
		arguments = append(arguments, options.Commit1)
	}
	if len(options.Commit2) > 0 {
		arguments = append(arguments, options.Commit2)
	}
	if options.NameOnly {
		arguments = append(arguments, nameOnlyFlagConstant)
	}
	if options.Staged {
		arguments = append(arguments, stagedFlagConstant)
	}
	if options.Whitespace != DiffWhitespaceRespect {
		arguments = append(arguments, string(options.Whitespace))
	}
	return arguments
}

// CommitArguments renders one -m flag per provided message.
func CommitArguments(messages []string) []string {
	arguments := []string{commitSubcommandConstant}
	for _, message := range messages {
		arguments = append(arguments, messageFlagConstant, message)
	}
	return arguments
}
