package handler

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

// invoicePrintTmpl renders a printable proforma invoice. The page is meant
// to be printed to PDF by the browser.
var invoicePrintTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": formatMoney,
}).Parse(`<!DOCTYPE html>
<html lang="tr">
<head>
<meta charset="utf-8">
<title>{{.Invoice.Number}}</title>
<style>
  body { font-family: Arial, sans-serif; margin: 40px; color: #222; }
  h1 { font-size: 22px; margin-bottom: 0; }
  .muted { color: #777; font-size: 13px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 8px 12px; border-bottom: 1px solid #ddd; font-size: 14px; }
  th { background: #f5f5f5; }
  td.num, th.num { text-align: right; }
  .totals { margin-top: 16px; width: 320px; margin-left: auto; }
  .totals td { border: none; padding: 4px 12px; }
  .totals tr.grand td { font-weight: bold; border-top: 2px solid #222; }
  @media print { body { margin: 10mm; } }
</style>
</head>
<body>
<h1>Proforma Fatura {{.Invoice.Number}}</h1>
<p class="muted">{{.Organization.Name}} &middot; {{.Invoice.IssuedAt.Format "02.01.2006"}}</p>

<p>
<strong>{{.Customer.Name}}</strong><br>
{{if .Customer.ContactName}}{{.Customer.ContactName}}<br>{{end}}
{{if .Customer.Address}}{{.Customer.Address}}<br>{{end}}
{{if .Customer.TaxID}}VKN: {{.Customer.TaxID}}{{end}}
</p>

<table>
<tr><th>Kalem</th><th class="num">Adet</th><th class="num">Birim</th><th class="num">Tutar</th></tr>
{{range .Lines}}
<tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .UnitPrice}}</td><td class="num">{{money .Amount}}</td></tr>
{{end}}
</table>

<table class="totals">
<tr><td>Ara Toplam</td><td class="num">{{money .Invoice.Subtotal}} {{.Invoice.Currency}}</td></tr>
<tr><td>KDV (%{{.TaxPercent}})</td><td class="num">{{money .Invoice.TaxAmount}} {{.Invoice.Currency}}</td></tr>
<tr class="grand"><td>Genel Toplam</td><td class="num">{{money .Invoice.Total}} {{.Invoice.Currency}}</td></tr>
</table>

<p class="muted">Bu belge proforma faturadır, mali belge yerine geçmez.</p>
</body>
</html>`))

type invoiceLine struct {
	Name      string
	Quantity  int
	UnitPrice int64
	Amount    int64
}

// formatMoney renders minor-currency units as a decimal string
func formatMoney(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d,%02d", sign, minor/100, minor%100)
}

// PrintInvoice handles rendering an invoice as a printable HTML page
func PrintInvoice(c echo.Context) error {
	log := logger.FromContext(c)
	sess := session(c)
	id, err := idParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	var invoice model.Invoice
	result := database.GetDB().
		Preload("Customer").
		Preload("WorkOrder").
		Preload("WorkOrder.PartsUsed.Part").
		Where("id = ? AND organization_id = ?", id, sess.OrgID).
		First(&invoice)
	if result.Error != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
	}

	var org model.Organization
	if result := database.GetDB().First(&org, sess.OrgID); result.Error != nil {
		log.Error("Failed to load organization", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render invoice"})
	}

	lines := []invoiceLine{}
	if invoice.WorkOrder != nil {
		for _, usage := range invoice.WorkOrder.PartsUsed {
			lines = append(lines, invoiceLine{
				Name:      usage.Part.Name,
				Quantity:  usage.Quantity,
				UnitPrice: usage.Part.Price,
				Amount:    usage.Part.Price * int64(usage.Quantity),
			})
		}
		if invoice.WorkOrder.LaborCost > 0 {
			lines = append(lines, invoiceLine{
				Name: "İşçilik", Quantity: 1,
				UnitPrice: invoice.WorkOrder.LaborCost,
				Amount:    invoice.WorkOrder.LaborCost,
			})
		}
		if invoice.WorkOrder.ServiceFee > 0 {
			lines = append(lines, invoiceLine{
				Name: "Servis Bedeli", Quantity: 1,
				UnitPrice: invoice.WorkOrder.ServiceFee,
				Amount:    invoice.WorkOrder.ServiceFee,
			})
		}
	}

	data := struct {
		Invoice      model.Invoice
		Organization model.Organization
		Customer     model.Customer
		Lines        []invoiceLine
		TaxPercent   int64
	}{
		Invoice:      invoice,
		Organization: org,
		Customer:     invoice.Customer,
		Lines:        lines,
		TaxPercent:   invoice.TaxRate / 100,
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	if err := invoicePrintTmpl.Execute(c.Response(), data); err != nil {
		log.Error("Failed to render invoice template", zap.Error(err))
		return err
	}
	return nil
}
