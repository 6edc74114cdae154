package mailer

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/KevynGreenn/Izi-Hotel-Compras/internal/entity"
)

// descriptionPreviewLen bounds the description excerpt in status emails.
const descriptionPreviewLen = 140

var templates = template.Must(template.New("mail").Funcs(template.FuncMap{
	"brl":      formatBRL,
	"dateBR":   formatDateBR,
	"preview":  previewDescription,
	"approved": func(status string) bool { return status == entity.StatusApproved },
}).Parse(`
{{define "approval_request"}}
<div style="font-family: sans-serif; padding: 20px; color: #333;">
  <h2>Nova Requisição de Compra</h2>
  <p>Olá,</p>
  <p>Uma nova solicitação de compra foi registrada e precisa da sua aprovação.</p>
  <p><strong>Clique no botão abaixo para visualizar os detalhes e aprovar:</strong></p>
  <a href="{{.Link}}" style="display: inline-block; padding: 12px 20px; margin: 15px 0; font-size: 16px; background-color: #8B0000; color: white; text-decoration: none; border-radius: 5px;">
    Ver e Aprovar Requisição
  </a>
  <p style="font-size: 12px;">Se o botão não funcionar, copie e cole este link no seu navegador:</p>
  <p style="font-size: 12px; color: #555;">{{.Link}}</p>
  <hr>
  <p style="font-size: 10px; color: #999;">Este é um e-mail automático do Sistema de Compras Izi Hotel.</p>
</div>
{{end}}

{{define "requester_status"}}
<div style="font-family: sans-serif; padding: 20px; color: #333;">
  {{if approved .Status}}<h2 style="color: #1a7a1a;">Requisição Aprovada</h2>{{else}}<h2 style="color: #8B0000;">Requisição Rejeitada</h2>{{end}}
  <p>Olá, {{.RequesterName}},</p>
  <p>Sua solicitação de compra foi <strong>{{.Status}}</strong>.</p>
  <p style="color: #555;">"{{preview .Description}}"</p>
  <hr>
  <p style="font-size: 10px; color: #999;">Este é um e-mail automático do Sistema de Compras Izi Hotel.</p>
</div>
{{end}}

{{define "admin_summary"}}
<div style="font-family: sans-serif; padding: 20px; color: #333;">
  <h2>Resumo da Requisição Aprovada</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><strong>Solicitante:</strong></td><td>{{.RequesterName}}</td></tr>
    <tr><td><strong>Telefone:</strong></td><td>{{.RequesterPhone}}</td></tr>
    <tr><td><strong>Centro de Custo:</strong></td><td>{{.CostCenter}}</td></tr>
    <tr><td><strong>Descrição:</strong></td><td>{{.Description}}</td></tr>
    <tr><td><strong>Valor:</strong></td><td>{{brl .Amount}}</td></tr>
    <tr><td><strong>Data de Pagamento:</strong></td><td>{{dateBR .PaymentDate}}</td></tr>
    <tr><td><strong>Forma de Pagamento:</strong></td><td>{{.PaymentMethod}}</td></tr>
    {{if .IsPix}}
    <tr><td><strong>Chave Pix:</strong></td><td>{{.SupplierPixKey}}</td></tr>
    <tr><td><strong>Fornecedor:</strong></td><td>{{.SupplierName}}</td></tr>
    {{end}}
  </table>
  <hr>
  <p style="font-size: 10px; color: #999;">Este é um e-mail automático do Sistema de Compras Izi Hotel.</p>
</div>
{{end}}
`))

func renderApprovalRequest(link string) (string, error) {
	var b strings.Builder
	err := templates.ExecuteTemplate(&b, "approval_request", struct{ Link string }{Link: link})
	return b.String(), err
}

func renderRequesterStatus(req *entity.Requisition) (string, error) {
	var b strings.Builder
	err := templates.ExecuteTemplate(&b, "requester_status", req)
	return b.String(), err
}

func renderAdminSummary(req *entity.Requisition) (string, error) {
	var b strings.Builder
	err := templates.ExecuteTemplate(&b, "admin_summary", req)
	return b.String(), err
}

// formatBRL renders an amount the way the hotel's finance team reads it,
// e.g. 1234.5 -> "R$ 1.234,50".
func formatBRL(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(intPart[i])
	}

	out := "R$ " + b.String() + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

func formatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

func previewDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) <= descriptionPreviewLen {
		return desc
	}
	return string(runes[:descriptionPreviewLen]) + "..."
}
