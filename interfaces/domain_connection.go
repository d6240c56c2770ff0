package interfaces

import (
	"context"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/internal/enum"
)

type DomainConnectionService interface {
	// Connect generates DNS instructions for the requested service type and
	// evaluates the domain's current connection state. It never returns an
	// error; failures surface inside the result.
	Connect(ctx context.Context, domain string, serviceType enum.ServiceType) *dto.ConnectionResult
	// Verify recomputes the connection state from a live DNS snapshot.
	Verify(ctx context.Context, domain string) (enum.VerificationStatus, *dto.DNSSnapshot)
}
