// Package model defines the developer metrics data transfer objects.
package model

// Profile holds the public profile fields of a developer.
type Profile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
	HTMLURL     string `json:"htmlUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	PublicRepos int    `json:"publicRepos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Metrics holds the statistics reduced from a developer's pull requests.
// Every field is 0 when there are no pull requests.
type Metrics struct {
	TotalPRs             int     `json:"totalPrs"`
	MergedPRs            int     `json:"mergedPrs"`
	MergeRate            float64 `json:"mergeRate"`
	MedianLeadTimeHours  float64 `json:"medianLeadTimeHours"`
	MedianSize           float64 `json:"medianSize"`
	AverageComments      float64 `json:"averageComments"`
	FeedbackScore        int     `json:"feedbackScore"`
	IssueResolutionScore int     `json:"issueResolutionScore"`

	// Scores on a 0-10 scale.
	MergeSuccess    float64 `json:"mergeSuccess"`
	CycleEfficiency float64 `json:"cycleEfficiency"`
	SizeEfficiency  float64 `json:"sizeEfficiency"`
	LeadTimeScore   float64 `json:"leadTimeScore"`
	ReviewActivity  float64 `json:"reviewActivity"`
}

// DeveloperMetrics is the response of GET /api/developers/:username/metrics.
type DeveloperMetrics struct {
	Profile
	Metrics
	Warnings []string `json:"warnings"`
}

// Developer is one entry of a developer search.
type Developer struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	HTMLURL   string `json:"htmlUrl,omitempty"`
}

// SearchResponse is the response of GET /api/developers.
type SearchResponse struct {
	Developers []Developer `json:"developers"`
	Total      int         `json:"total"`
	Warnings   []string    `json:"warnings"`
}
