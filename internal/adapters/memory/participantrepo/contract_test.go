package participantrepo

import (
	"testing"

	"github.com/wakacyjne/trip-expense-api/internal/adapters/contracttest"
	memtriplinkrepo "github.com/wakacyjne/trip-expense-api/internal/adapters/memory/triplinkrepo"
	participantrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/participantrepo"
	triplinkrepoport "github.com/wakacyjne/trip-expense-api/internal/ports/out/triplinkrepo"
)

func TestContract_ParticipantAndLinkRepos(t *testing.T) {
	contracttest.RunParticipantAndLinkRepos(
		t,
		func(t *testing.T) (participantrepoport.Repository, func()) {
			t.Helper()
			return NewRepo(), nil
		},
		func(t *testing.T) (triplinkrepoport.Repository, func()) {
			t.Helper()
			return memtriplinkrepo.NewRepo(), nil
		},
	)
}
