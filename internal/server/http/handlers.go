package httpx

import "net/http"

func (r *Router) handleRegister(w http.ResponseWriter, req *http.Request) {
	var payload registerRequest
	if err := decodeJSON(w, req, &payload); err != nil {
		writeText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if _, err := r.users.Register(req.Context(), payload.Name, payload.Email, payload.Password); err != nil {
		writeServiceError(w, err)
		return
	}
	writeText(w, http.StatusCreated, "User Registered Successfully")
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var payload loginRequest
	if err := decodeJSON(w, req, &payload); err != nil {
		writeText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	token, err := r.users.Login(req.Context(), payload.Email, payload.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{JWTToken: token})
}

func (r *Router) handleCreateTransaction(w http.ResponseWriter, req *http.Request) {
	var payload transactionRequest
	if err := decodeJSON(w, req, &payload); err != nil {
		writeText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	created, err := r.ledger.Create(req.Context(), ownerID(req), payload.fields())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Location", "/transactions/"+created.ID+"/")
	writeText(w, http.StatusCreated, "Transaction Added Successfully")
}

func (r *Router) handleListTransactions(w http.ResponseWriter, req *http.Request) {
	items, err := r.ledger.List(req.Context(), ownerID(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]transactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (r *Router) handleGetTransaction(w http.ResponseWriter, req *http.Request) {
	item, err := r.ledger.Get(req.Context(), ownerID(req), req.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(item))
}

func (r *Router) handleUpdateTransaction(w http.ResponseWriter, req *http.Request) {
	var payload transactionRequest
	if err := decodeJSON(w, req, &payload); err != nil {
		writeText(w, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := r.ledger.Update(req.Context(), ownerID(req), req.PathValue("id"), payload.fields()); err != nil {
		writeServiceError(w, err)
		return
	}
	writeText(w, http.StatusOK, "Transaction Updated Successfully")
}

func (r *Router) handleDeleteTransaction(w http.ResponseWriter, req *http.Request) {
	if err := r.ledger.Delete(req.Context(), ownerID(req), req.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeText(w, http.StatusOK, "Transaction Deleted Successfully")
}

func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) {
	summary, err := r.ledger.Summarize(req.Context(), ownerID(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) {
	res, err := r.exporter.Export(req.Context(), ownerID(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exportResponse{Key: res.Key, URL: res.URL})
}

func (r *Router) handleExportHistory(w http.ResponseWriter, req *http.Request) {
	items, err := r.exporter.History(req.Context(), ownerID(req))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]exportRecordResponse, 0, len(items))
	for _, e := range items {
		out = append(out, exportRecordResponse{Key: e.StorageKey, Rows: e.Rows, CreatedAt: e.CreatedAt})
	}
	writeJSON(w, http.StatusOK, out)
}
