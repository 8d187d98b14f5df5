package purchase

import (
	"context"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	dompurchase "github.com/kailas-cloud/wareflow/internal/domain/purchase"
	"github.com/kailas-cloud/wareflow/internal/domain/record"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Listing is the purchase workspace the service builds on.
type Listing = listing.Service[dompurchase.Purchase]

// CustomerFinder resolves the owner of a history.
type CustomerFinder interface {
	Get(ctx context.Context, id record.ID) (domcust.Customer, error)
}
