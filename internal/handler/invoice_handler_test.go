package handler

import (
	"fmt"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/internal/model"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/database"
)

var invoiceNumberPattern = regexp.MustCompile(`^INV-\d{4}-\d{4}$`)

func seedBilledWorkOrder(t *testing.T, orgID uint) model.WorkOrder {
	t.Helper()
	customer := seedCustomer(t, orgID, "Fatura Müşterisi")

	order := model.WorkOrder{
		OrganizationID: orgID,
		CustomerID:     customer.ID,
		Code:           "WO-26-00001",
		Type:           model.WorkOrderFault,
		Status:         model.WorkOrderDone,
		LaborCost:      50000,
		ServiceFee:     10000,
	}
	require.NoError(t, database.GetDB().Create(&order).Error)

	part := model.Part{OrganizationID: orgID, Name: "Kapı Fişi", Price: 4500, Stock: 10}
	require.NoError(t, database.GetDB().Create(&part).Error)
	usage := model.PartUsage{WorkOrderID: order.ID, PartID: part.ID, Quantity: 2}
	require.NoError(t, database.GetDB().Create(&usage).Error)
	return order
}

func TestCreateInvoiceDerivesTotals(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "inv-org")
	order := seedBilledWorkOrder(t, org.ID)

	body := fmt.Sprintf(`{"work_order_id":%d}`, order.ID)
	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoice model.Invoice
	require.NoError(t, database.GetDB().Where("work_order_id = ?", order.ID).First(&invoice).Error)

	// parts 2*4500 + labor 50000 + fee 10000
	assert.Equal(t, int64(69000), invoice.Subtotal)
	assert.Equal(t, int64(2000), invoice.TaxRate)
	assert.Equal(t, int64(13800), invoice.TaxAmount)
	assert.Equal(t, int64(82800), invoice.Total)
	assert.Equal(t, invoice.Subtotal+invoice.TaxAmount, invoice.Total)
	assert.Regexp(t, invoiceNumberPattern, invoice.Number)
	assert.Equal(t, model.InvoiceDraft, invoice.Status)
	assert.Equal(t, "TRY", invoice.Currency)
}

func TestInvoiceNumbersScopedPerOrganization(t *testing.T) {
	setupTest(t)
	orgA, _, sessA := seedOrg(t, "inv-a")
	orgB, _, sessB := seedOrg(t, "inv-b")
	orderA := seedBilledWorkOrder(t, orgA.ID)
	orderB := seedBilledWorkOrder(t, orgB.ID)

	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices",
		fmt.Sprintf(`{"work_order_id":%d}`, orderA.ID), sessA, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices",
		fmt.Sprintf(`{"work_order_id":%d}`, orderB.ID), sessB, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoiceA, invoiceB model.Invoice
	require.NoError(t, database.GetDB().Where("organization_id = ?", orgA.ID).First(&invoiceA).Error)
	require.NoError(t, database.GetDB().Where("organization_id = ?", orgB.ID).First(&invoiceB).Error)
	assert.Regexp(t, invoiceNumberPattern, invoiceA.Number)
	// Each organization numbers its own invoices from 0001
	assert.Equal(t, invoiceA.Number, invoiceB.Number)
}

func TestCreateInvoiceDuplicateConflict(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "inv-org")
	order := seedBilledWorkOrder(t, org.ID)

	body := fmt.Sprintf(`{"work_order_id":%d}`, order.ID)
	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, sess, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	var count int64
	database.GetDB().Model(&model.Invoice{}).Where("work_order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateInvoiceExplicitAmounts(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "inv-org")
	order := seedBilledWorkOrder(t, org.ID)

	body := fmt.Sprintf(`{"work_order_id":%d,"subtotal":10000,"tax_rate":1800}`, order.ID)
	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoice model.Invoice
	require.NoError(t, database.GetDB().Where("work_order_id = ?", order.ID).First(&invoice).Error)
	assert.Equal(t, int64(10000), invoice.Subtotal)
	assert.Equal(t, int64(1800), invoice.TaxAmount)
	assert.Equal(t, int64(11800), invoice.Total)
}

func TestCreateInvoiceForeignWorkOrder(t *testing.T) {
	setupTest(t)
	org, _, _ := seedOrg(t, "inv-org")
	_, _, otherSess := seedOrg(t, "other-org")
	order := seedBilledWorkOrder(t, org.ID)

	body := fmt.Sprintf(`{"work_order_id":%d}`, order.ID)
	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, otherSess, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateInvoiceMarkPaid(t *testing.T) {
	setupTest(t)
	org, _, sess := seedOrg(t, "inv-org")
	order := seedBilledWorkOrder(t, org.ID)

	body := fmt.Sprintf(`{"work_order_id":%d}`, order.ID)
	rec := doRequest(t, CreateInvoice, http.MethodPost, "/api/invoices", body, sess, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var invoice model.Invoice
	require.NoError(t, database.GetDB().Where("work_order_id = ?", order.ID).First(&invoice).Error)

	rec = doRequest(t, UpdateInvoice, http.MethodPatch, "/api/invoices/1",
		`{"status":"PAID"}`, sess, map[string]string{"id": fmt.Sprint(invoice.ID)})
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, database.GetDB().First(&invoice, invoice.ID).Error)
	assert.Equal(t, model.InvoicePaid, invoice.Status)
	assert.NotNil(t, invoice.PaidAt)
}
