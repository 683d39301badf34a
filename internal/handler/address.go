package handler

import (
	"net/http"

	"github.com/rahmatd/contactbook/internal/auth"
	"github.com/rahmatd/contactbook/internal/model"
	"github.com/rahmatd/contactbook/internal/service"
)

// AddressHandler serves the /api/contacts/{contactID}/addresses endpoints.
type AddressHandler struct {
	addresses *service.AddressService
}

func NewAddressHandler(addresses *service.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// addressScope pulls the authenticated user and both path ids out of the
// request. The contact id maps to "Contact not found" and the address id to
// "Address not found" when malformed, matching the attribution order of the
// ownership hops.
func (h *AddressHandler) addressScope(w http.ResponseWriter, r *http.Request, withAddressID bool) (*model.User, int64, int64, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, errMissingAuthContext)
		return nil, 0, 0, false
	}

	contactID, err := pathID(r, "contactID", "Contact not found")
	if err != nil {
		writeError(w, err)
		return nil, 0, 0, false
	}

	var addressID int64
	if withAddressID {
		addressID, err = pathID(r, "addressID", "Address not found")
		if err != nil {
			writeError(w, err)
			return nil, 0, 0, false
		}
	}

	return user, contactID, addressID, true
}

// HandleCreate handles POST /api/contacts/{contactID}/addresses.
func (h *AddressHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, contactID, _, ok := h.addressScope(w, r, false)
	if !ok {
		return
	}

	var req model.AddressPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	address, err := h.addresses.Create(r.Context(), user, contactID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, model.NewAddressResponse(address))
}

// HandleList handles GET /api/contacts/{contactID}/addresses.
func (h *AddressHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, contactID, _, ok := h.addressScope(w, r, false)
	if !ok {
		return
	}

	addresses, err := h.addresses.List(r.Context(), user, contactID)
	if err != nil {
		writeError(w, err)
		return
	}

	data := make([]model.AddressResponse, 0, len(addresses))
	for i := range addresses {
		data = append(data, model.NewAddressResponse(&addresses[i]))
	}

	writeData(w, http.StatusOK, data)
}

// HandleGet handles GET /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, contactID, addressID, ok := h.addressScope(w, r, true)
	if !ok {
		return
	}

	address, err := h.addresses.Get(r.Context(), user, contactID, addressID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, model.NewAddressResponse(address))
}

// HandleUpdate handles PUT /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, contactID, addressID, ok := h.addressScope(w, r, true)
	if !ok {
		return
	}

	var req model.AddressPayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	address, err := h.addresses.Update(r.Context(), user, contactID, addressID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, model.NewAddressResponse(address))
}

// HandleDelete handles DELETE /api/contacts/{contactID}/addresses/{addressID}.
func (h *AddressHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, contactID, addressID, ok := h.addressScope(w, r, true)
	if !ok {
		return
	}

	if err := h.addresses.Delete(r.Context(), user, contactID, addressID); err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, true)
}
