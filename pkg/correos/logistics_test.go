package correos

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

func logisticsTransport(t *testing.T, handler func(req *http.Request) (*http.Response, error)) roundTripFunc {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/token" {
			return jsonResponse(http.StatusOK, `{"access_token":"tok-1","expiresIn":"30"}`), nil
		}
		return handler(req)
	}
}

func TestPreregisterSendsContractAndReturnsLabelCode(t *testing.T) {
	var captured map[string]any
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/preregister" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		body, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		return jsonResponse(http.StatusOK, `{"codEtiquetado":"PQ1234"}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	code, err := client.Preregister(context.Background(), PreregisterRequest{
		Referencia:   "envio-1",
		Remitente:    Party{Nombre: "Brickshare Almacén", Direccion: "Avinguda Josep Tarradellas 97", CP: "08029", Poblacion: "Barcelona", Provincia: "Barcelona"},
		Destinatario: Party{Nombre: "Ana García", Direccion: "Calle Mayor 12", CP: "28013", Poblacion: "Madrid", Provincia: "Madrid"},
	})
	if err != nil {
		t.Fatalf("preregister: %v", err)
	}
	if code != "PQ1234" {
		t.Fatalf("unexpected label code %q", code)
	}

	if captured["solicitante"] != "contract-1" {
		t.Fatalf("expected contract id as solicitante, got %v", captured["solicitante"])
	}
	envio, _ := captured["envio"].(map[string]any)
	if envio == nil || envio["referencia"] != "envio-1" {
		t.Fatalf("unexpected envio payload %v", captured["envio"])
	}
	if _, ok := envio["caracteristicas"]; ok {
		t.Fatal("outbound preregister must not request the label-free service")
	}
	bultos, _ := envio["bultos"].([]any)
	if len(bultos) != 1 {
		t.Fatalf("expected default package, got %v", envio["bultos"])
	}
}

func TestPreregisterLabelFreeRequestsUnlabeledService(t *testing.T) {
	var captured map[string]any
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &captured)
		return jsonResponse(http.StatusOK, `{"codEtiquetado":"RET999"}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	code, err := client.Preregister(context.Background(), PreregisterRequest{
		Referencia:   "RET-abc12345",
		Remitente:    Party{Nombre: "Ana García"},
		Destinatario: Party{Nombre: "Brickshare Oficinas"},
		LabelFree:    true,
	})
	if err != nil {
		t.Fatalf("preregister: %v", err)
	}
	if code != "RET999" {
		t.Fatalf("unexpected return code %q", code)
	}

	envio, _ := captured["envio"].(map[string]any)
	caracteristicas, _ := envio["caracteristicas"].(map[string]any)
	if caracteristicas["etiqueta_sin_etiqueta"] != "S" {
		t.Fatalf("expected etiqueta_sin_etiqueta=S, got %v", envio["caracteristicas"])
	}
}

func TestPreregisterFailsWhenCodeMissing(t *testing.T) {
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.Preregister(context.Background(), PreregisterRequest{Referencia: "envio-1"})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestRequestLabelReturnsDocumentBytes(t *testing.T) {
	var captured map[string]any
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/labels" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		body, _ := io.ReadAll(req.Body)
		_ = json.Unmarshal(body, &captured)
		return jsonResponse(http.StatusOK, "%PDF-1.4 label"), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	label, err := client.RequestLabel(context.Background(), "PQ1234")
	if err != nil {
		t.Fatalf("request label: %v", err)
	}
	if string(label) != "%PDF-1.4 label" {
		t.Fatalf("unexpected label body %q", label)
	}
	if captured["shipmentId"] != "PQ1234" || captured["format"] != "PDF" {
		t.Fatalf("unexpected label payload %v", captured)
	}
}

func TestRequestPickupReturnsRequestCode(t *testing.T) {
	var captured []map[string]any
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/digital-delivery/v1/pickups" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		body, _ := io.ReadAll(req.Body)
		if err := json.Unmarshal(body, &captured); err != nil {
			t.Fatalf("decode payload: %v", err)
		}
		return jsonResponse(http.StatusOK, `[{"codRequests":"PU-77"}]`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	code, err := client.RequestPickup(context.Background(), PickupRequest{
		Address:      "Calle Mayor 12, 2B",
		Locality:     "Madrid",
		Province:     "Madrid",
		PostalCode:   "28013",
		ContactName:  "Ana García",
		ContactEmail: "ana@example.com",
		ContactPhone: "600111222",
	})
	if err != nil {
		t.Fatalf("request pickup: %v", err)
	}
	if code != "PU-77" {
		t.Fatalf("unexpected pickup code %q", code)
	}

	if len(captured) != 1 {
		t.Fatalf("expected single-entry pickup payload, got %v", captured)
	}
	entry := captured[0]
	if entry["codContract"] != "contract-1" || entry["codAnnex"] != "091" || entry["originSystem"] != "CEX" {
		t.Fatalf("unexpected pickup contract fields %v", entry)
	}
	if entry["address"] != "Calle Mayor 12" {
		t.Fatalf("expected street portion of address, got %v", entry["address"])
	}
}

func TestTrackSendsCredentialHeadersAndReturnsRawEvents(t *testing.T) {
	rt := logisticsTransport(t, func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/logistics/trackpub/api/v2/search/PQ1234" {
			t.Fatalf("unexpected path %s", req.URL.Path)
		}
		if req.Header.Get("client_id") != "client-id" || req.Header.Get("client_secret") != "client-secret" {
			t.Fatalf("expected credential headers, got %v", req.Header)
		}
		return jsonResponse(http.StatusOK, `{"shipment":[{"events":[{"summaryText":"Entregado"}]}]}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	events, err := client.Track(context.Background(), "PQ1234")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(events, &decoded); err != nil {
		t.Fatalf("tracking payload not passed through: %v", err)
	}
}

func TestPreregisterRetriesOnceOnRejectedToken(t *testing.T) {
	var tokenCalls, preregisterCalls int
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path == "/token" {
			tokenCalls++
			return jsonResponse(http.StatusOK, `{"access_token":"tok-`+string(rune('0'+tokenCalls))+`","expiresIn":"30"}`), nil
		}
		preregisterCalls++
		body, _ := io.ReadAll(req.Body)
		if len(body) == 0 {
			t.Fatal("retried request lost its body")
		}
		if req.Header.Get("Authorization") == "Bearer tok-1" {
			return jsonResponse(http.StatusForbidden, `{"error":"expired"}`), nil
		}
		return jsonResponse(http.StatusOK, `{"codEtiquetado":"PQ1234"}`), nil
	})

	client, err := NewClient(testConfig(), WithHTTPClient(&http.Client{Transport: rt}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	code, err := client.Preregister(context.Background(), PreregisterRequest{Referencia: "envio-1"})
	if err != nil {
		t.Fatalf("preregister: %v", err)
	}
	if code != "PQ1234" {
		t.Fatalf("unexpected label code %q", code)
	}
	if tokenCalls != 2 || preregisterCalls != 2 {
		t.Fatalf("expected one retry after refresh, got %d token / %d preregister calls", tokenCalls, preregisterCalls)
	}
}
