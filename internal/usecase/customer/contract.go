package customer

import (
	"time"

	domcust "github.com/kailas-cloud/wareflow/internal/domain/customer"
	"github.com/kailas-cloud/wareflow/internal/usecase/listing"
)

// Listing is the customer screen workspace the service builds on.
type Listing = listing.Service[domcust.Customer]

// Clock returns the current time. Replaced in tests.
type Clock func() time.Time
