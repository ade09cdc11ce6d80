package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mapleleaf/taxprep_backend/internal/core/domain"
)

func TestNormalizeVendor(t *testing.T) {
	tests := []struct {
		name      string
		vendorRaw string
		want      string
	}{
		{
			name:      "store number suffix",
			vendorRaw: "Tim Hortons #4521",
			want:      "Tim Hortons",
		},
		{
			name:      "embedded digits",
			vendorRaw: "Shell Gas Station #89",
			want:      "Shell Gas Station",
		},
		{
			name:      "no noise",
			vendorRaw: "Google Workspace",
			want:      "Google Workspace",
		},
		{
			name:      "collapses interior whitespace",
			vendorRaw: "Uber   Trip  #8843",
			want:      "Uber Trip",
		},
		{
			name:      "digits only",
			vendorRaw: "12345",
			want:      "",
		},
		{
			name:      "empty input",
			vendorRaw: "",
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeVendor(tt.vendorRaw))
		})
	}
}

func TestTransactionWithDetail_LatestClassification(t *testing.T) {
	unclassified := domain.TransactionWithDetail{}
	assert.Nil(t, unclassified.LatestClassification())

	classified := domain.TransactionWithDetail{
		Classifications: []domain.Classification{
			{ClassificationID: "c2", Category: "Travel", Source: domain.SourceManual},
			{ClassificationID: "c1", Category: "Office Expenses", Source: domain.SourceAI},
		},
	}
	latest := classified.LatestClassification()
	assert.NotNil(t, latest)
	assert.Equal(t, "c2", latest.ClassificationID)
}

func TestActorRoles(t *testing.T) {
	junior := domain.Actor{Role: domain.RoleJunior}
	senior := domain.Actor{Role: domain.RoleSenior}

	assert.True(t, junior.CanPrepare())
	assert.False(t, junior.CanReview())
	assert.True(t, senior.CanPrepare())
	assert.True(t, senior.CanReview())
}

func TestIsValidCategory(t *testing.T) {
	assert.True(t, domain.IsValidCategory("Travel"))
	assert.True(t, domain.IsValidCategory(domain.CategoryUncategorized))
	assert.False(t, domain.IsValidCategory("travel"))
	assert.False(t, domain.IsValidCategory("Snacks"))
}
