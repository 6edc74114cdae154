package requisition

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/config"
	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
	repo "github.com/KevynGreenn/Izi-Hotel-Compras/internal/repository/requisition"
	service "github.com/KevynGreenn/Izi-Hotel-Compras/internal/service/requisition"
)

type stubStore struct {
	createFunc     func(ctx context.Context, req *entity.Requisition) error
	getByTokenFunc func(ctx context.Context, token string) (*entity.Requisition, error)
	updateFunc     func(ctx context.Context, token, status string) (*entity.Requisition, error)
}

func (s *stubStore) Create(ctx context.Context, req *entity.Requisition) error {
	return s.createFunc(ctx, req)
}

func (s *stubStore) GetByToken(ctx context.Context, token string) (*entity.Requisition, error) {
	return s.getByTokenFunc(ctx, token)
}

func (s *stubStore) UpdateStatus(ctx context.Context, token, status string) (*entity.Requisition, error) {
	return s.updateFunc(ctx, token, status)
}

type stubSender struct{}

func (stubSender) ApprovalRequest(context.Context, string) error              { return nil }
func (stubSender) RequesterStatus(context.Context, *entity.Requisition) error { return nil }
func (stubSender) AdminSummary(context.Context, *entity.Requisition) error    { return nil }

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T, store *stubStore) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		Mail: config.Mail{FrontendBaseURL: "http://127.0.0.1:5500"},
	}
	svc := service.NewService(service.Params{
		Store:  store,
		Config: cfg,
		Logger: zap.NewNop(),
		Sender: stubSender{},
	})

	e := echo.New()
	Register(e, NewHandler(svc))
	return e
}

func doRequest(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec, env
}

const validBody = `{
	"nome": "Maria Santos",
	"email": "maria@izihotel.com.br",
	"telefone": "11988887777",
	"descricao": "Compra de enxoval",
	"centroCusto": "Governança",
	"valor": 450.00,
	"dataPagamento": "2026-09-15",
	"opcaoPagamento": "Boleto"
}`

func TestCreateRequisition(t *testing.T) {
	store := &stubStore{
		createFunc: func(_ context.Context, req *entity.Requisition) error {
			req.ID = 1
			return nil
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodPost, "/api/requisicao", validBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !env.Success || env.Message != "Requisição criada com sucesso!" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	token, _ := env.Data["token"].(string)
	if len(token) != 40 {
		t.Fatalf("expected 40-char token in response, got %q", token)
	}
	if env.Data["status"] != "Pendente" {
		t.Fatalf("expected Pendente status, got %v", env.Data["status"])
	}
	approvalURL, _ := env.Data["aprovarUrl"].(string)
	if !strings.Contains(approvalURL, "aprovar.html?token="+token) {
		t.Fatalf("approval URL missing or malformed: %q", approvalURL)
	}
}

func TestCreateRequisitionPixWithoutKey(t *testing.T) {
	store := &stubStore{
		createFunc: func(context.Context, *entity.Requisition) error {
			t.Fatal("store should not be reached on invalid input")
			return nil
		},
	}
	e := newTestServer(t, store)

	body := strings.Replace(validBody, `"Boleto"`, `"Pix"`, 1)
	rec, env := doRequest(e, http.MethodPost, "/api/requisicao", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Success || env.Error == nil || env.Error.Kind != "bad_request" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestCreateRequisitionMalformedBody(t *testing.T) {
	store := &stubStore{}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodPost, "/api/requisicao", `{"valor": "not-a-number"`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if env.Success {
		t.Fatal("expected failure envelope")
	}
}

func TestGetRequisitionByToken(t *testing.T) {
	store := &stubStore{
		getByTokenFunc: func(_ context.Context, token string) (*entity.Requisition, error) {
			return &entity.Requisition{ID: 2, Token: token, Status: entity.StatusPending}, nil
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodGet, "/api/requisicao/abc123", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Data["token"] != "abc123" || env.Data["status"] != "Pendente" {
		t.Fatalf("unexpected payload: %+v", env.Data)
	}
}

func TestGetRequisitionUnknownToken(t *testing.T) {
	store := &stubStore{
		getByTokenFunc: func(context.Context, string) (*entity.Requisition, error) {
			return nil, repo.ErrNotFound
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodGet, "/api/requisicao/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Kind != "not_found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestApproveRequisition(t *testing.T) {
	store := &stubStore{
		updateFunc: func(_ context.Context, token, status string) (*entity.Requisition, error) {
			return &entity.Requisition{ID: 3, Token: token, Status: status}, nil
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodPost, "/api/requisicao/abc123/aprovar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.Message != "Requisição aprovada com sucesso!" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
	if env.Data["status"] != "Aprovada" {
		t.Fatalf("expected Aprovada, got %v", env.Data["status"])
	}
}

func TestRejectRequisition(t *testing.T) {
	store := &stubStore{
		updateFunc: func(_ context.Context, token, status string) (*entity.Requisition, error) {
			return &entity.Requisition{ID: 4, Token: token, Status: status}, nil
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodPost, "/api/requisicao/abc123/rejeitar", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env.Message != "Requisição rejeitada com sucesso!" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
	if env.Data["status"] != "Rejeitada" {
		t.Fatalf("expected Rejeitada, got %v", env.Data["status"])
	}
}

func TestApproveAlreadyDecided(t *testing.T) {
	store := &stubStore{
		updateFunc: func(context.Context, string, string) (*entity.Requisition, error) {
			return nil, repo.ErrAlreadyDecided
		},
	}
	e := newTestServer(t, store)

	rec, env := doRequest(e, http.MethodPost, "/api/requisicao/abc123/aprovar", "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if env.Error == nil || env.Error.Kind != "conflict" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
