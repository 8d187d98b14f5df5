package chi

import (
	"bytes"
	"net/http"

	"github.com/kailas-cloud/wareflow/internal/export"
	purchaseuc "github.com/kailas-cloud/wareflow/internal/usecase/purchase"
)

// CustomerPurchases handles GET /customers/{id}/purchases.
func (s *Server) CustomerPurchases(w http.ResponseWriter, r *http.Request) {
	q, err := s.listQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	h, err := s.purchases.History(r.Context(), pathID(r), q)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	setETag(w, h.Page.Revision)
	writeJSON(w, http.StatusOK, purchaseHistoryResponse{
		Customer: customerToResponse(h.Customer),
		Summary: purchaseSummaryResponse{
			Transactions: h.Summary.Transactions,
			Completed:    h.Summary.Completed,
			TotalSpent:   h.Summary.TotalSpent,
			AverageOrder: h.Summary.AverageOrder,
		},
		Purchases: toPageResponse(h.Page, purchaseToResponse, s.pageSizes),
	})
}

// ExportCustomerPurchases handles GET /customers/{id}/purchases/export.
func (s *Server) ExportCustomerPurchases(w http.ResponseWriter, r *http.Request) {
	f, err := export.ParseFormat(r.URL.Query().Get(paramFormat))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	q, err := s.listQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	id := pathID(r)
	var buf bytes.Buffer
	if err := s.purchases.ExportHistory(r.Context(), &buf, f, id, q); err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeFile(w, f, purchaseuc.SheetName+"-"+string(id), buf.Bytes())
}
