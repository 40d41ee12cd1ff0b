// Package model defines the repository insights data transfer objects.
package model

import "time"

// Metric names reported in RepoInsights.Unavailable.
const (
	MetricDeploymentFrequency = "deploymentFrequency"
	MetricLeadTime            = "leadTime"
	MetricChangeFailureRate   = "changeFailureRate"
	MetricMeanTimeToRestore   = "meanTimeToRestore"
	MetricOpenIssues          = "openIssues"
	MetricOpenPullRequests    = "openPullRequests"
	MetricWeeklyCommits       = "weeklyCommits"
	MetricContributorCount    = "contributorCount"
	MetricCommunityHealth     = "communityHealth"
)

// WeekCommits is one bar of the weekly commit histogram.
type WeekCommits struct {
	Week  time.Time `json:"week"`
	Total int       `json:"total"`
}

// RepoInsights is the response of GET /api/repos/:owner/:repo/insights.
// A metric that could not be fetched stays zero and is named in Unavailable.
type RepoInsights struct {
	Owner      string `json:"owner"`
	Repo       string `json:"repo"`
	WindowDays int    `json:"windowDays"`

	// DeploymentFrequency is releases published per week in the window.
	DeploymentFrequency float64 `json:"deploymentFrequency"`
	// LeadTimeHours is the median created to merged time of pull requests merged in the window.
	LeadTimeHours float64 `json:"leadTimeHours"`
	// ChangeFailureRate is the percentage of merged pull requests that are reverts or hotfixes.
	ChangeFailureRate float64 `json:"changeFailureRate"`
	// MeanTimeToRestoreHours is the mean open to close time of bug issues closed in the window.
	MeanTimeToRestoreHours float64       `json:"meanTimeToRestoreHours"`
	OpenIssues             int           `json:"openIssues"`
	OpenPullRequests       int           `json:"openPullRequests"`
	WeeklyCommits          []WeekCommits `json:"weeklyCommits"`
	ContributorCount       int           `json:"contributorCount"`
	CommunityHealthScore   int           `json:"communityHealthScore"`

	Unavailable []string `json:"unavailable"`
	Warnings    []string `json:"warnings"`
}
