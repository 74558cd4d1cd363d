package gitcmd

import (
	"path/filepath"
	"strings"
)

const (
	onBranchLinePrefixConstant           = "On branch "
	detachedHeadLinePrefixConstant       = "HEAD detached at "
	remoteTrackingLinePrefixConstant     = "Your branch is up to date with '"
	remoteTrackingLineSuffixConstant     = "'"
	notStagedSectionHeaderConstant       = "Changes not staged for commit"
	stagedSectionHeaderConstant          = "Changes to be committed"
	untrackedSectionHeaderConstant       = "Untracked files"
	modifiedEntryLabelConstant           = "modified:"
	deletedEntryLabelConstant            = "deleted:"
	hintLinePrefixConstant               = "("
	currentBranchMarkerConstant          = "*"
	branchAliasMarkerConstant            = "->"
	diffGitHeaderPrefixConstant          = "diff --git a/"
	diffGitHeaderPathSeparatorConstant   = " b/"
	trackingNameSeparatorColonConstant   = ":"
	newlineConstant                      = "\n"
	carriageReturnConstant               = "\r"
	remoteBranchReferenceSeparatorsValue = trackingNameSeparatorColonConstant + pathSeparatorConstant
)

type statusSection int

const (
	statusSectionNone statusSection = iota
	statusSectionNotStaged
	statusSectionStaged
	statusSectionUntracked
)

// RemoteBranchReference names a branch on a remote repository.
type RemoteBranchReference struct {
	RepositoryTrackingName string
	BranchName             string
}

// FullName joins the tracking name and branch name with a colon. A reference
// without a tracking name renders as the bare branch name.
func (reference RemoteBranchReference) FullName() string {
	if len(reference.RepositoryTrackingName) == 0 {
		return reference.BranchName
	}
	return reference.RepositoryTrackingName + trackingNameSeparatorColonConstant + reference.BranchName
}

// ParseRemoteBranchReference splits "tracking:branch" or "tracking/branch"
// text at the first separator. Text without a separator yields an empty
// tracking name and the whole string as the branch name.
func ParseRemoteBranchReference(referenceText string) RemoteBranchReference {
	separatorIndex := strings.IndexAny(referenceText, remoteBranchReferenceSeparatorsValue)
	if separatorIndex == -1 {
		return RemoteBranchReference{BranchName: referenceText}
	}
	return RemoteBranchReference{
		RepositoryTrackingName: referenceText[:separatorIndex],
		BranchName:             referenceText[separatorIndex+1:],
	}
}

// StatusSnapshot is the parsed form of a working-tree status listing.
type StatusSnapshot struct {
	LocalBranch            string
	RemoteBranch           string
	HasUncommittedChanges  bool
	ModifiedFiles          []string
	NotStagedModifiedFiles []string
	NotStagedDeletedFiles  []string
	StagedModifiedFiles    []string
	StagedDeletedFiles     []string
	UntrackedFiles         []string
}

// ParseStatus extracts a StatusSnapshot from status output, resolving file
// paths to absolute paths against the execution directory. Unrecognized lines
// are skipped rather than failing the parse.
func ParseStatus(statusOutput string, executionDirectory string) StatusSnapshot {
	snapshot := StatusSnapshot{}
	currentSection := statusSectionNone

	for _, rawLine := range splitOutputLines(statusOutput) {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}

		if strings.HasPrefix(trimmedLine, onBranchLinePrefixConstant) {
			snapshot.LocalBranch = strings.TrimPrefix(trimmedLine, onBranchLinePrefixConstant)
			continue
		}
		if strings.HasPrefix(trimmedLine, detachedHeadLinePrefixConstant) {
			snapshot.LocalBranch = strings.TrimPrefix(trimmedLine, detachedHeadLinePrefixConstant)
			continue
		}
		if strings.HasPrefix(trimmedLine, remoteTrackingLinePrefixConstant) {
			remoteBranchText := strings.TrimPrefix(trimmedLine, remoteTrackingLinePrefixConstant)
			if suffixIndex := strings.Index(remoteBranchText, remoteTrackingLineSuffixConstant); suffixIndex != -1 {
				snapshot.RemoteBranch = remoteBranchText[:suffixIndex]
			}
			continue
		}

		switch {
		case strings.HasPrefix(trimmedLine, notStagedSectionHeaderConstant):
			currentSection = statusSectionNotStaged
			continue
		case strings.HasPrefix(trimmedLine, stagedSectionHeaderConstant):
			currentSection = statusSectionStaged
			continue
		case strings.HasPrefix(trimmedLine, untrackedSectionHeaderConstant):
			currentSection = statusSectionUntracked
			continue
		}

		if strings.HasPrefix(trimmedLine, hintLinePrefixConstant) {
			continue
		}
		if !lineIsIndented(rawLine) {
			currentSection = statusSectionNone
			continue
		}

		switch currentSection {
		case statusSectionNotStaged:
			if entryPath, isModified := parseLabeledEntry(trimmedLine, modifiedEntryLabelConstant); isModified {
				snapshot.NotStagedModifiedFiles = append(snapshot.NotStagedModifiedFiles, resolvePath(executionDirectory, entryPath))
			}
			if entryPath, isDeleted := parseLabeledEntry(trimmedLine, deletedEntryLabelConstant); isDeleted {
				snapshot.NotStagedDeletedFiles = append(snapshot.NotStagedDeletedFiles, resolvePath(executionDirectory, entryPath))
			}
		case statusSectionStaged:
			if entryPath, isModified := parseLabeledEntry(trimmedLine, modifiedEntryLabelConstant); isModified {
				snapshot.StagedModifiedFiles = append(snapshot.StagedModifiedFiles, resolvePath(executionDirectory, entryPath))
			}
			if entryPath, isDeleted := parseLabeledEntry(trimmedLine, deletedEntryLabelConstant); isDeleted {
				snapshot.StagedDeletedFiles = append(snapshot.StagedDeletedFiles, resolvePath(executionDirectory, entryPath))
			}
		case statusSectionUntracked:
			snapshot.UntrackedFiles = append(snapshot.UntrackedFiles, resolvePath(executionDirectory, trimmedLine))
		}
	}

	snapshot.ModifiedFiles = append(snapshot.ModifiedFiles, snapshot.NotStagedModifiedFiles...)
	snapshot.ModifiedFiles = append(snapshot.ModifiedFiles, snapshot.StagedModifiedFiles...)
	snapshot.ModifiedFiles = append(snapshot.ModifiedFiles, snapshot.UntrackedFiles...)

	snapshot.HasUncommittedChanges = len(snapshot.ModifiedFiles) > 0 ||
		len(snapshot.NotStagedDeletedFiles) > 0 ||
		len(snapshot.StagedDeletedFiles) > 0

	return snapshot
}

// ParseDiffFiles extracts the changed file paths from diff output. Name-only
// output treats every non-empty line as a relative path; full diff output
// contributes the "b/" path of each "diff --git" header. Duplicates are kept
// in order of appearance.
func ParseDiffFiles(diffOutput string, nameOnly bool, executionDirectory string) []string {
	filesChanged := []string{}
	for _, rawLine := range splitOutputLines(diffOutput) {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}

		if nameOnly {
			filesChanged = append(filesChanged, resolvePath(executionDirectory, trimmedLine))
			continue
		}

		if !strings.HasPrefix(trimmedLine, diffGitHeaderPrefixConstant) {
			continue
		}
		headerRemainder := strings.TrimPrefix(trimmedLine, diffGitHeaderPrefixConstant)
		separatorIndex := strings.LastIndex(headerRemainder, diffGitHeaderPathSeparatorConstant)
		if separatorIndex == -1 {
			continue
		}
		filesChanged = append(filesChanged, resolvePath(executionDirectory, headerRemainder[separatorIndex+len(diffGitHeaderPathSeparatorConstant):]))
	}
	return filesChanged
}

// LocalBranchListing is the parsed form of a local branch listing.
type LocalBranchListing struct {
	CurrentBranch string
	LocalBranches []string
}

// ParseLocalBranches extracts branch names from branch output. The line
// carrying the current-branch marker contributes to both CurrentBranch and
// LocalBranches; listings without a marked line leave CurrentBranch empty.
func ParseLocalBranches(branchOutput string) LocalBranchListing {
	listing := LocalBranchListing{LocalBranches: []string{}}
	for _, rawLine := range splitOutputLines(branchOutput) {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.HasPrefix(trimmedLine, currentBranchMarkerConstant) {
			branchName := strings.TrimSpace(strings.TrimPrefix(trimmedLine, currentBranchMarkerConstant))
			listing.CurrentBranch = branchName
			listing.LocalBranches = append(listing.LocalBranches, branchName)
			continue
		}
		listing.LocalBranches = append(listing.LocalBranches, trimmedLine)
	}
	return listing
}

// ParseRemoteBranches extracts remote branch references from branch --remotes
// output, skipping alias lines that point one reference at another.
func ParseRemoteBranches(branchOutput string) []RemoteBranchReference {
	remoteBranches := []RemoteBranchReference{}
	for _, rawLine := range splitOutputLines(branchOutput) {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}
		if strings.Contains(trimmedLine, branchAliasMarkerConstant) {
			continue
		}
		remoteBranches = append(remoteBranches, ParseRemoteBranchReference(trimmedLine))
	}
	return remoteBranches
}

// ParseConfigurationValue returns the trimmed configuration value when the
// lookup succeeded and produced output.
func ParseConfigurationValue(configOutput string, exitCode int) (string, bool) {
	trimmedValue := strings.TrimSpace(configOutput)
	if exitCode != 0 || len(trimmedValue) == 0 {
		return "", false
	}
	return trimmedValue, true
}

// ParseRemoteListing maps remote names to URLs from remote --verbose output.
// The fetch and push variants a remote lists collapse to one entry per name,
// with the last occurrence winning.
func ParseRemoteListing(remoteOutput string) map[string]string {
	remotes := map[string]string{}
	for _, rawLine := range splitOutputLines(remoteOutput) {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 {
			continue
		}
		lineFields := strings.Fields(trimmedLine)
		if len(lineFields) < 2 {
			continue
		}
		remotes[lineFields[0]] = lineFields[1]
	}
	return remotes
}

func splitOutputLines(output string) []string {
	return strings.Split(strings.ReplaceAll(output, carriageReturnConstant, ""), newlineConstant)
}

func lineIsIndented(rawLine string) bool {
	return strings.HasPrefix(rawLine, " ") || strings.HasPrefix(rawLine, "\t")
}

func parseLabeledEntry(trimmedLine string, entryLabel string) (string, bool) {
	if !strings.HasPrefix(trimmedLine, entryLabel) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(trimmedLine, entryLabel)), true
}

func resolvePath(executionDirectory string, relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(executionDirectory, relativePath)
}
