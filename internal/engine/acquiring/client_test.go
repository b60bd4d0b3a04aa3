package acquiring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"securepay/internal/engine/signing"
	"securepay/internal/pkg/logger"
	"securepay/internal/platform/config"
	"securepay/internal/platform/models"
)

const (
	testTerminal = "TestTerminal"
	testPassword = "pwd"

	// sha256("100A1pwdTestTerminal")
	initToken = "52a87acbe98923bfd887ad9dbe29ecbd9c70adb83817ed3c6f06a60c5184e181"
)

type recordedRequest struct {
	Path        string
	ContentType string
	Body        map[string]interface{}
}

func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var recorded []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		var body map[string]interface{}
		if err := json.Unmarshal(raw, &body); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}

		mu.Lock()
		recorded = append(recorded, recordedRequest{Path: r.URL.Path, ContentType: r.Header.Get("Content-Type"), Body: body})
		mu.Unlock()

		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)

	return srv, &recorded
}

func TestClient_Init(t *testing.T) {
	srv, recorded := newTestServer(t, http.StatusOK, `{
		"Success": true, "ErrorCode": "0", "TerminalKey": "TestTerminal", "Status": "NEW",
		"PaymentId": "13660", "OrderId": "A1", "Amount": 100,
		"PaymentURL": "https://securepay.tinkoff.ru/new/fU1ppgqa"
	}`)

	client := New(testTerminal, testPassword, WithBaseURL(srv.URL+"/v2"))

	resp, err := client.Init(context.Background(), models.InitRequest{Amount: 100, OrderID: "A1"})
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, models.StatusNew, resp.Status)
	assert.Equal(t, models.FlexString("13660"), resp.PaymentID)
	assert.Equal(t, "https://securepay.tinkoff.ru/new/fU1ppgqa", resp.PaymentURL)

	require.Len(t, *recorded, 1)
	got := (*recorded)[0]
	assert.Equal(t, "/v2/Init", got.Path)
	assert.Equal(t, "application/json", got.ContentType)
	assert.Equal(t, testTerminal, got.Body["TerminalKey"])
	assert.Equal(t, initToken, got.Body["Token"])
	assert.NotContains(t, got.Body, "Password")
}

func TestClient_InitNestedFieldsDoNotAffectToken(t *testing.T) {
	srv, recorded := newTestServer(t, http.StatusOK, `{"Success": true, "ErrorCode": "0"}`)
	client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

	_, err := client.Init(context.Background(), models.InitRequest{
		Amount:  100,
		OrderID: "A1",
		Data:    map[string]string{"Phone": "+71234567890"},
		Receipt: models.ReceiptFFD105{
			Taxation: models.TaxationOSN,
			Email:    "buyer@example.com",
			Items:    []models.ItemFFD105{{Name: "Tea", Price: 100, Quantity: 1, Amount: 100, Tax: models.TaxNone}},
		},
	})
	require.NoError(t, err)

	require.Len(t, *recorded, 1)
	body := (*recorded)[0].Body
	assert.Equal(t, initToken, body["Token"])
	assert.Contains(t, body, "Receipt")
	assert.Contains(t, body, "DATA")
}

func TestClient_DoesNotMutateCallerRequest(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"Success": true}`)
	client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

	req := models.GetStateRequest{PaymentID: "13660"}
	_, err := client.GetState(context.Background(), req)
	require.NoError(t, err)

	assert.Empty(t, req.TerminalKey)
	assert.Empty(t, req.Token)
}

func TestClient_Methods(t *testing.T) {
	srv, recorded := newTestServer(t, http.StatusOK, `{
		"Success": true, "ErrorCode": "0", "Status": "CONFIRMED", "PaymentId": 13660,
		"OrderId": "A1", "OriginalAmount": 100, "NewAmount": 0,
		"Payments": [{"PaymentId": "13660", "Amount": 100, "Status": "CONFIRMED", "Success": true, "ErrorCode": "0"}]
	}`)
	client := New(testTerminal, testPassword, WithBaseURL(srv.URL))
	ctx := context.Background()

	state, err := client.GetState(ctx, models.GetStateRequest{PaymentID: "13660"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, state.Status)
	assert.Equal(t, "13660", state.PaymentID.String())

	order, err := client.CheckOrder(ctx, models.CheckOrderRequest{OrderID: "A1"})
	require.NoError(t, err)
	require.Len(t, order.Payments, 1)
	assert.Equal(t, int64(100), order.Payments[0].Amount)

	confirm, err := client.Confirm(ctx, models.ConfirmRequest{PaymentID: "13660", Amount: 100})
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirm.Status)

	cancel, err := client.Cancel(ctx, models.CancelRequest{PaymentID: "13660", ExternalRequestID: "refund-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(100), cancel.OriginalAmount)

	paths := []string{}
	for _, r := range *recorded {
		paths = append(paths, r.Path)
	}
	assert.Equal(t, []string{"/GetState", "/CheckOrder", "/Confirm", "/Cancel"}, paths)

	// sha256("13660pwdTestTerminal")
	assert.Equal(t, "ff5faa478c242ba14de27109ea7250c10dcbfc604d561ca4b4d8e9bc3da6dae1", (*recorded)[0].Body["Token"])

	for _, r := range *recorded {
		fields, err := signing.FieldsFromJSON(mustJSON(t, r.Body))
		require.NoError(t, err)
		assert.Equal(t, signing.Token(fields.Without(signing.TokenField), testPassword), r.Body["Token"], r.Path)
	}
}

func TestClient_BusinessFailureIsNotAnError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"Success": false, "ErrorCode": "204", "Message": "Неверный токен", "Details": "token mismatch"}`)
	client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

	resp, err := client.Cancel(context.Background(), models.CancelRequest{PaymentID: "1"})
	require.NoError(t, err)
	assert.False(t, resp.Success)

	var apiErr *models.APIError
	require.True(t, errors.As(resp.Err(), &apiErr))
	assert.Equal(t, "204", apiErr.Code)
}

func TestClient_TransportErrors(t *testing.T) {
	t.Run("json body on error status", func(t *testing.T) {
		for _, status := range []int{http.StatusBadRequest, http.StatusInternalServerError} {
			srv, _ := newTestServer(t, status, `{"Success": false, "ErrorCode": "9999", "Message": "Внутренняя ошибка"}`)
			client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

			resp, err := client.GetState(context.Background(), models.GetStateRequest{PaymentID: "1"})
			require.NoError(t, err, "status %d", status)
			assert.False(t, resp.Success)
			assert.Equal(t, "9999", resp.ErrorCode.String())
			assert.Equal(t, "Внутренняя ошибка", resp.Message)
		}
	})

	t.Run("non-json body on error status", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)
		client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

		_, err := client.CheckOrder(context.Background(), models.CheckOrderRequest{OrderID: "A1"})
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr), "got %v", err)
		assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
		assert.Equal(t, MethodCheckOrder, transportErr.Method)
		assert.True(t, errors.Is(err, ErrInvalidResponse))
		assert.Equal(t, "CheckOrder: unexpected HTTP status 502 with non-JSON body", err.Error())
	})

	t.Run("not json", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `<html>maintenance</html>`)
		client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

		_, err := client.GetState(context.Background(), models.GetStateRequest{PaymentID: "1"})
		assert.True(t, errors.Is(err, ErrInvalidResponse), "got %v", err)
	})

	t.Run("connection refused", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{}`)
		url := srv.URL
		srv.Close()

		client := New(testTerminal, testPassword, WithBaseURL(url))
		_, err := client.Init(context.Background(), models.InitRequest{Amount: 1, OrderID: "x"})
		assert.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "Init: "), err.Error())
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv, _ := newTestServer(t, http.StatusOK, `{}`)
		client := New(testTerminal, testPassword, WithBaseURL(srv.URL))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := client.Init(ctx, models.InitRequest{Amount: 1, OrderID: "x"})
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	})
}

type fakeTransport struct {
	mu     sync.Mutex
	bodies map[Method][][]byte
	reply  []byte
	err    error
}

func (f *fakeTransport) Post(ctx context.Context, method Method, body []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.bodies == nil {
		f.bodies = map[Method][][]byte{}
	}
	f.bodies[method] = append(f.bodies[method], body)
	return f.reply, f.err
}

func TestClient_ConcurrentCalls(t *testing.T) {
	transport := &fakeTransport{reply: []byte(`{"Success": true}`)}
	client := New(testTerminal, testPassword, WithTransport(transport))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Init(context.Background(), models.InitRequest{Amount: 100, OrderID: "A1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, transport.bodies[MethodInit], 20)
	for _, body := range transport.bodies[MethodInit] {
		assert.Equal(t, transport.bodies[MethodInit][0], body)
	}
}

func TestClient_InjectedHash(t *testing.T) {
	transport := &fakeTransport{reply: []byte(`{"Success": true}`)}
	identity := signing.NewSigner(signing.WithHash(func(data []byte) string { return string(data) }))
	client := New(testTerminal, testPassword, WithTransport(transport), WithSigner(identity))

	_, err := client.CheckOrder(context.Background(), models.CheckOrderRequest{OrderID: "A1"})
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(transport.bodies[MethodCheckOrder][0], &body))
	assert.Equal(t, "A1pwdTestTerminal", body["Token"])
}

func TestClient_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	debugLogger := zerolog.New(&buf)
	transport := &fakeTransport{reply: []byte(`{"Success": true}`)}

	client := New(testTerminal, "super-secret", WithTransport(transport), WithLogger(debugLogger), WithDebug(true))
	_, err := client.GetState(context.Background(), models.GetStateRequest{PaymentID: "13660"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "created acquiring client for terminal")
	assert.Contains(t, out, `"method":"GetState"`)
	assert.Contains(t, out, `"PaymentId":"13660"`)
	assert.NotContains(t, out, "super-secret")

	buf.Reset()
	quiet := New(testTerminal, "super-secret", WithTransport(transport), WithLogger(debugLogger))
	_, err = quiet.GetState(context.Background(), models.GetStateRequest{PaymentID: "13660"})
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestClient_DebugLoggingAtDefaultLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
	logger.Init(config.LoggingConfig{Level: "info", Format: "json"})

	var buf bytes.Buffer
	transport := &fakeTransport{reply: []byte(`{"Success": true}`)}

	client := New(testTerminal, "super-secret", WithTransport(transport), WithLogger(zerolog.New(&buf)), WithDebug(true))
	_, err := client.GetState(context.Background(), models.GetStateRequest{PaymentID: "13660"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "created acquiring client for terminal")
	assert.Contains(t, out, `"PaymentId":"13660"`)
	assert.NotContains(t, out, "super-secret")
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}
