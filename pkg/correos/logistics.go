package correos

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	preregisterPath = "/preregister"
	labelsPath      = "/labels"
	pickupsPath     = "/digital-delivery/v1/pickups"
	trackingPath    = "/logistics/trackpub/api/v2/search/"

	pickupAnnex        = "091"
	pickupModality     = "S"
	pickupOriginSystem = "CEX"

	labelBodyLimit int64 = 10 << 20
)

// Party is a preregistration sender or recipient.
type Party struct {
	Nombre    string `json:"nombre"`
	Direccion string `json:"direccion"`
	CP        string `json:"cp"`
	Poblacion string `json:"poblacion"`
	Provincia string `json:"provincia"`
	Email     string `json:"email,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
}

// Package is one parcel; weight in kg, dimensions in cm.
type Package struct {
	Peso  int `json:"peso"`
	Alto  int `json:"alto"`
	Ancho int `json:"ancho"`
	Largo int `json:"largo"`
}

// DefaultPackage is the standard Brickshare box.
var DefaultPackage = Package{Peso: 1, Alto: 10, Ancho: 20, Largo: 30}

// PreregisterRequest announces one shipment to the carrier before the
// physical handover. LabelFree requests the "etiqueta sin etiqueta"
// service, where the dropping office prints the label from a code.
type PreregisterRequest struct {
	Referencia   string
	Remitente    Party
	Destinatario Party
	Bultos       []Package
	LabelFree    bool
}

type preregisterShipment struct {
	CodEtiquetado   string                   `json:"codEtiquetado"`
	Referencia      string                   `json:"referencia"`
	Remitente       Party                    `json:"remitente"`
	Destinatario    Party                    `json:"destinatario"`
	Bultos          []Package                `json:"bultos"`
	Caracteristicas *shipmentCharacteristics `json:"caracteristicas,omitempty"`
}

type shipmentCharacteristics struct {
	EtiquetaSinEtiqueta string `json:"etiqueta_sin_etiqueta"`
}

// Preregister announces the shipment and returns the carrier labeling code.
func (c *Client) Preregister(ctx context.Context, req PreregisterRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "correos client not configured")
	}
	if strings.TrimSpace(req.Referencia) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shipment reference is required")
	}

	bultos := req.Bultos
	if len(bultos) == 0 {
		bultos = []Package{DefaultPackage}
	}
	payload := struct {
		Solicitante string              `json:"solicitante"`
		Fecha       string              `json:"fecha"`
		Envio       preregisterShipment `json:"envio"`
	}{
		Solicitante: c.contractID,
		Fecha:       time.Now().Format("2006-01-02"),
		Envio: preregisterShipment{
			Referencia:   req.Referencia,
			Remitente:    req.Remitente,
			Destinatario: req.Destinatario,
			Bultos:       bultos,
		},
	}
	if req.LabelFree {
		payload.Envio.Caracteristicas = &shipmentCharacteristics{EtiquetaSinEtiqueta: "S"}
	}

	resp, err := c.postJSON(ctx, preregisterPath, payload)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp, "preregister failed")
	}

	var result struct {
		CodEtiquetado string `json:"codEtiquetado"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode preregister response")
	}
	if result.CodEtiquetado == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "preregister response missing codEtiquetado")
	}
	return result.CodEtiquetado, nil
}

// RequestLabel fetches the PDF label for a preregistered shipment.
func (c *Client) RequestLabel(ctx context.Context, shipmentID string) ([]byte, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "correos client not configured")
	}
	if strings.TrimSpace(shipmentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carrier shipment id is required")
	}

	payload := struct {
		ShipmentID string `json:"shipmentId"`
		Format     string `json:"format"`
	}{ShipmentID: shipmentID, Format: "PDF"}

	resp, err := c.postJSON(ctx, labelsPath, payload)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "label request failed")
	}

	label, err := io.ReadAll(io.LimitReader(resp.Body, labelBodyLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read label response")
	}
	return label, nil
}

// PickupRequest schedules a courier collection at the given address.
type PickupRequest struct {
	Address      string
	Locality     string
	Province     string
	PostalCode   string
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// RequestPickup schedules a pickup and returns the carrier request code.
func (c *Client) RequestPickup(ctx context.Context, req PickupRequest) (string, error) {
	if c == nil {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "correos client not configured")
	}
	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.PostalCode) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "pickup address and postal code are required")
	}

	payload := []map[string]any{{
		"codContract":         c.contractID,
		"codSpecificContract": c.contractID,
		"codAnnex":            pickupAnnex,
		"modalityType":        pickupModality,
		"estimatedShipments":  1,
		"estimatedVolume":     20,
		"address":             strings.TrimSpace(strings.Split(req.Address, ",")[0]),
		"number":              "1",
		"locality":            req.Locality,
		"province":            req.Province,
		"postalCode":          req.PostalCode,
		"contactName":         req.ContactName,
		"contactEmail":        req.ContactEmail,
		"phoneNumberContact":  req.ContactPhone,
		"originSystem":        pickupOriginSystem,
	}}

	resp, err := c.postJSON(ctx, pickupsPath, payload)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", statusError(resp, "pickup request failed")
	}

	var result []struct {
		CodRequests string `json:"codRequests"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode pickup response")
	}
	if len(result) == 0 || result[0].CodRequests == "" {
		return "", pkgerrors.New(pkgerrors.CodeDependency, "pickup response missing codRequests")
	}
	return result[0].CodRequests, nil
}

// Track returns the raw tracking events for a carrier shipment id.
func (c *Client) Track(ctx context.Context, shipmentID string) (json.RawMessage, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "correos client not configured")
	}
	if strings.TrimSpace(shipmentID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "carrier shipment id is required")
	}

	endpoint := strings.TrimRight(c.baseURL, "/") + trackingPath + shipmentID
	resp, err := c.doAuthorized(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("client_id", c.clientID)
		httpReq.Header.Set("client_secret", c.clientSecret)
		return httpReq, nil
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp, "tracking request failed")
	}

	events, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read tracking response")
	}
	return json.RawMessage(events), nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "encode correos payload")
	}
	endpoint := strings.TrimRight(c.baseURL, "/") + path

	return c.doAuthorized(ctx, func() (*http.Request, error) {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "application/json")
		return httpReq, nil
	})
}
