package leadfilter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"leadhub/internal/domain"
)

var (
	alice = uuid.New()
	bob   = uuid.New()
)

func sampleLeads() []domain.Lead {
	return []domain.Lead{
		{ID: uuid.New(), CompanyName: "Acme Corp", Status: "New", Tags: []string{"Tech", "Urgent"}, CreatedBy: alice, AssignedTo: bob},
		{ID: uuid.New(), CompanyName: "Globex", Status: "Contacted", Tags: []string{"Finance"}, CreatedBy: bob, AssignedTo: bob},
		{ID: uuid.New(), CompanyName: "Initech Acmeworks", Status: "New", Tags: []string{"Tech"}, CreatedBy: alice, AssignedTo: alice},
	}
}

func TestApplyEmptyFiltersReturnsAll(t *testing.T) {
	leads := sampleLeads()
	result := Apply(leads, domain.LeadFilters{})

	assert.Len(t, result, 3)
	assert.Equal(t, leads[0].ID, result[0].ID)
	assert.Equal(t, leads[2].ID, result[2].ID)
}

func TestApplySearchIsCaseInsensitiveSubstring(t *testing.T) {
	leads := sampleLeads()
	result := Apply(leads, domain.LeadFilters{Search: "acme"})

	assert.Len(t, result, 2)
	assert.Equal(t, "Acme Corp", result[0].CompanyName)
	assert.Equal(t, "Initech Acmeworks", result[1].CompanyName)
}

func TestApplyStatusExactMatch(t *testing.T) {
	result := Apply(sampleLeads(), domain.LeadFilters{Status: "Contacted"})

	assert.Len(t, result, 1)
	assert.Equal(t, "Globex", result[0].CompanyName)
}

func TestApplyTagContainment(t *testing.T) {
	result := Apply(sampleLeads(), domain.LeadFilters{Tag: "Tech"})

	assert.Len(t, result, 2)
}

func TestApplyOwnerFilters(t *testing.T) {
	result := Apply(sampleLeads(), domain.LeadFilters{CreatedBy: alice})
	assert.Len(t, result, 2)

	result = Apply(sampleLeads(), domain.LeadFilters{AssignedTo: bob})
	assert.Len(t, result, 2)
}

func TestApplyFiltersCombineWithAND(t *testing.T) {
	result := Apply(sampleLeads(), domain.LeadFilters{
		Search: "acme",
		Status: "New",
		Tag:    "Urgent",
	})

	assert.Len(t, result, 1)
	assert.Equal(t, "Acme Corp", result[0].CompanyName)
}

func TestApplyNoMatchesReturnsEmptyNotNil(t *testing.T) {
	result := Apply(sampleLeads(), domain.LeadFilters{Status: "Closed"})

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	leads := sampleLeads()
	Apply(leads, domain.LeadFilters{Search: "globex"})

	assert.Equal(t, "Acme Corp", leads[0].CompanyName)
	assert.Len(t, leads, 3)
}
