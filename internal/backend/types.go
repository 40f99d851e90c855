package backend

import (
	"strings"

	"github.com/Cyclone1070/testgen/internal/repo"
)

// repositoryDTO is the wire format for repository metadata.
type repositoryDTO struct {
	Owner         string `json:"owner"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	HTMLURL       string `json:"html_url"`
	DefaultBranch string `json:"default_branch"`
}

func (d repositoryDTO) toRepository() repo.Repository {
	r := repo.Repository{
		FullName:      d.FullName,
		Owner:         d.Owner,
		Name:          d.Name,
		URL:           d.HTMLURL,
		DefaultBranch: d.DefaultBranch,
		Description:   d.Description,
	}
	if owner, name, ok := strings.Cut(d.FullName, "/"); ok {
		if r.Owner == "" {
			r.Owner = owner
		}
		if r.Name == "" {
			r.Name = name
		}
	}
	if r.FullName == "" && r.Owner != "" && r.Name != "" {
		r.FullName = r.Owner + "/" + r.Name
	}
	return r
}

// fileDTO is the wire format for a listing entry.
type fileDTO struct {
	Path string `json:"path"`
	Size *int64 `json:"size"`
}

func toFiles(dtos []fileDTO) []repo.RepositoryFile {
	files := make([]repo.RepositoryFile, 0, len(dtos))
	for _, d := range dtos {
		if d.Path == "" {
			continue
		}
		files = append(files, repo.RepositoryFile{Path: d.Path, Size: d.Size})
	}
	return files
}

// AnalyzeResult is the public analysis of a repository.
type AnalyzeResult struct {
	Repository repo.Repository
	Files      []repo.RepositoryFile
}

// FrameworksResult lists the frameworks the service offers for a file.
type FrameworksResult struct {
	Language  string   `json:"language"`
	Default   string   `json:"default_framework"`
	Available []string `json:"available_frameworks"`
}

// PullRequest is the request body for opening a pull request.
type PullRequest struct {
	RepositoryFullName string `json:"repo_full_name"`
	TestCode           string `json:"test_code"`
	TestFileName       string `json:"test_file_name"`
	BranchName         string `json:"branch_name"`
	CommitMessage      string `json:"commit_message"`
}

// PullRequestResult is the service's reply for an opened pull request.
type PullRequestResult struct {
	Success    bool   `json:"success"`
	URL        string `json:"pr_url"`
	Number     int    `json:"pr_number"`
	BranchName string `json:"branch_name"`
}
