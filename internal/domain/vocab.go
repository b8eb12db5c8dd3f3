package domain

// Lifecycle status vocabulary, in pipeline order. StatusNew is forced on
// every created lead.
const StatusNew = "New"

var Statuses = []string{
	"New",
	"Under Review",
	"On Hold",
	"Shared with Faculty In-charge",
	"Shared with CCD",
	"Contacted",
	"Replied",
	"Placement Initiated",
	"Interviewing",
	"Closed",
	"Rejected",
}

// Statuses outside the active pipeline. Leads in these states do not count
// as active on the dashboard.
var terminalStatuses = map[string]bool{
	"Closed":   true,
	"Rejected": true,
}

var Sources = []string{
	"LinkedIn", "Website", "Referral", "Campus Drive", "Cold Outreach", "Job Board",
}

var Tags = []string{
	"Full-time", "Internship", "Part-time", "Tech", "Non-Tech", "MNC",
	"Startup", "Service", "Product", "Consulting", "Fintech", "EdTech",
	"Strategy", "Analytics", "Finance", "HR", "Marketing", "Operations",
}

// statusStyles maps each status to its display style token. The mapping is
// explicit rather than derived from the label text, so renaming a status
// never silently changes its styling.
var statusStyles = map[string]string{
	"New":                           "status-new",
	"Under Review":                  "status-under-review",
	"On Hold":                       "status-on-hold",
	"Shared with Faculty In-charge": "status-shared-faculty",
	"Shared with CCD":               "status-shared-ccd",
	"Contacted":                     "status-contacted",
	"Replied":                       "status-replied",
	"Placement Initiated":           "status-placement-initiated",
	"Interviewing":                  "status-interviewing",
	"Closed":                        "status-closed",
	"Rejected":                      "status-rejected",
}

func IsValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	return terminalStatuses[status]
}

// StatusStyle returns the style token for a status, or an empty string for
// unknown statuses.
func StatusStyle(status string) string {
	return statusStyles[status]
}

// Vocabulary is the configuration payload clients use to populate status,
// source and tag pickers.
type Vocabulary struct {
	Statuses []string `json:"statuses"`
	Sources  []string `json:"sources"`
	Tags     []string `json:"tags"`
}

func Vocab() Vocabulary {
	return Vocabulary{Statuses: Statuses, Sources: Sources, Tags: Tags}
}
