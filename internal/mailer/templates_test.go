package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"450", "R$ 450,00"},
		{"1234.5", "R$ 1.234,50"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"0.5", "R$ 0,50"},
		{"-99.9", "-R$ 99,90"},
	}
	for _, tc := range cases {
		got := formatBRL(decimal.RequireFromString(tc.in))
		if got != tc.want {
			t.Errorf("formatBRL(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDateBR(t *testing.T) {
	d := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)
	if got := formatDateBR(d); got != "15/09/2026" {
		t.Fatalf("formatDateBR = %q", got)
	}
}

func TestPreviewDescription(t *testing.T) {
	short := "Compra de enxoval"
	if got := previewDescription(short); got != short {
		t.Fatalf("short description must pass through, got %q", got)
	}

	long := strings.Repeat("ç", 200)
	got := previewDescription(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long description must be truncated with ellipsis, got %q", got)
	}
	if n := len([]rune(got)); n != descriptionPreviewLen+3 {
		t.Fatalf("expected %d runes, got %d", descriptionPreviewLen+3, n)
	}
}

func TestRenderApprovalRequestContainsLink(t *testing.T) {
	link := "http://127.0.0.1:5500/aprovar.html?token=deadbeef"
	body, err := renderApprovalRequest(link)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, link) {
		t.Fatalf("body does not contain the approval link:\n%s", body)
	}
	if !strings.Contains(body, "Nova Requisição de Compra") {
		t.Fatal("body missing subject heading")
	}
}

func TestRenderRequesterStatus(t *testing.T) {
	req := &entity.Requisition{
		RequesterName: "Maria Santos",
		Description:   "Compra de enxoval",
		Status:        entity.StatusApproved,
	}
	body, err := renderRequesterStatus(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "Requisição Aprovada") {
		t.Fatalf("approved heading missing:\n%s", body)
	}
	if !strings.Contains(body, "Maria Santos") {
		t.Fatal("requester name missing")
	}

	req.Status = entity.StatusRejected
	body, err = renderRequesterStatus(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "Requisição Rejeitada") {
		t.Fatalf("rejected heading missing:\n%s", body)
	}
}

func TestRenderAdminSummaryPixBlock(t *testing.T) {
	req := &entity.Requisition{
		RequesterName:  "Carlos Lima",
		RequesterPhone: "11977776666",
		Description:    "Manutenção do elevador",
		CostCenter:     "Manutenção",
		Amount:         decimal.RequireFromString("1234.56"),
		PaymentDate:    time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC),
		PaymentMethod:  entity.PaymentMethodPix,
		SupplierPixKey: "chave@fornecedor.com",
		SupplierName:   "Elevadores Sul Ltda",
		Status:         entity.StatusApproved,
	}

	body, err := renderAdminSummary(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(body, "R$ 1.234,56") {
		t.Fatalf("formatted amount missing:\n%s", body)
	}
	if !strings.Contains(body, "01/10/2026") {
		t.Fatal("formatted payment date missing")
	}
	if !strings.Contains(body, "chave@fornecedor.com") || !strings.Contains(body, "Elevadores Sul Ltda") {
		t.Fatal("pix block missing for pix payment")
	}

	req.PaymentMethod = "Boleto"
	body, err = renderAdminSummary(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(body, "Chave Pix") {
		t.Fatalf("pix block must be omitted for non-pix payment:\n%s", body)
	}
}
