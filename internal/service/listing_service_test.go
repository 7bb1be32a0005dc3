package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shadowlynx/monitor/internal/domain"
	"github.com/shadowlynx/monitor/internal/service"
)

// Page validation happens before any store access, so nil repositories are
// fine here.
func TestListOpportunitiesRejectsNonPositivePage(t *testing.T) {
	svc := service.NewListingService(nil, nil)

	for _, page := range []int{0, -1, -50} {
		_, _, err := svc.ListOpportunities(context.Background(), domain.OpportunityFilter{}, page, 50)
		if !errors.Is(err, domain.ErrInvalidPage) {
			t.Errorf("page %d: err = %v, want ErrInvalidPage", page, err)
		}
	}
}
