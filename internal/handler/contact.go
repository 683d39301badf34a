package handler

import (
	"net/http"
	"strconv"

	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/repository"
	"github.com/rahmatd/contactbook/internal/service"
)

// ContactHandler serves the /api/contacts endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// HandleCreate handles POST /api/contacts.
func (h *ContactHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	var req model.ContactPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.contacts.Create(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, model.NewContactResponse(contact))
}

// HandleGet handles GET /api/contacts/{contactID}.
func (h *ContactHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	contactID, err := pathID(r, "contactID", "Contact not found")
	if err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.contacts.Get(r.Context(), user, contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, model.NewContactResponse(contact))
}

// HandleUpdate handles PUT /api/contacts/{contactID}.
func (h *ContactHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	contactID, err := pathID(r, "contactID", "Contact not found")
	if err != nil {
		writeError(w, err)
		return
	}

	var req model.ContactPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	contact, err := h.contacts.Update(r.Context(), user, contactID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, model.NewContactResponse(contact))
}

// HandleDelete handles DELETE /api/contacts/{contactID}.
func (h *ContactHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	contactID, err := pathID(r, "contactID", "Contact not found")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.contacts.Delete(r.Context(), user, contactID); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}

// HandleSearch handles GET /api/contacts with the optional name/email/phone
// filters and page/limit pagination. No filters means the full owned set,
// paginated; zero matches is an empty 200, not a 404.
func (h *ContactHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return
	}

	q := r.URL.Query()
	filter := repository.ContactFilter{
		Name:  q.Get("name"),
		Email: q.Get("email"),
		Phone: q.Get("phone"),
	}
	// Unparseable page/limit values fall back to the defaults.
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	filter = filter.Normalized()

	contacts, total, err := h.contacts.Search(r.Context(), user, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]model.ContactResponse, 0, len(contacts))
	for i := range contacts {
		data = append(data, model.NewContactResponse(&contacts[i]))
	}

	writeJSON(w, http.StatusOK, pageEnvelope{
		Data: data,
		Meta: newPageMeta(filter.Page, filter.Limit, total),
	})
}
