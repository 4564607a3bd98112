package handlers

import (
	"bytes"
	"encoding/csv"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"baf-backend/constants"
	"baf-backend/models"
	"baf-backend/services"

	"github.com/gorilla/mux"
)

// wizardForm builds a multipart submission body. Text fields only, the
// tests below fail before the files are reached.
func wizardForm(t *testing.T, overrides map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	fields := map[string]string{
		"name":                       "Sunita Patil",
		"email":                      "sunita@example.org",
		"mobile":                     "9876543210",
		"father_mother_husband_name": "Ramesh Patil",
		"aadhar_number":              "123456789012",
		"date_of_birth":              "1992-04-18",
		"street":                     "14 Shivaji Nagar",
		"city":                       "Pune",
		"state":                      "Maharashtra",
		"pin_code":                   "411005",
		"payment_method":             "upi",
		"transaction_id":             "TXN1234567890",
	}
	for k, v := range overrides {
		fields[k] = v
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	writer.Close()

	return body, writer.FormDataContentType()
}

func newTestRegistrationHandler() *RegistrationHandler {
	// Zero-value storage is enough: validation failures return before
	// any upload is attempted
	return &RegistrationHandler{storage: &services.StorageService{}}
}

func TestRegisterRejectsInvalidMobile(t *testing.T) {
	h := newTestRegistrationHandler()

	body, contentType := wizardForm(t, map[string]string{"mobile": "12345"})
	req := httptest.NewRequest(http.MethodPost, "/api/programs/507f1f77bcf86cd799439011/register", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"program_id": "507f1f77bcf86cd799439011"})

	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Code = %v, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Invalid mobile number") {
		t.Errorf("body should contain the inline mobile error, got %s", rr.Body.String())
	}
}

func TestRegisterRejectsInvalidAadhar(t *testing.T) {
	h := newTestRegistrationHandler()

	body, contentType := wizardForm(t, map[string]string{"aadhar_number": "1234"})
	req := httptest.NewRequest(http.MethodPost, "/api/programs/507f1f77bcf86cd799439011/register", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"program_id": "507f1f77bcf86cd799439011"})

	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Code = %v, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "aadhar_number") {
		t.Errorf("body should name the aadhar_number field, got %s", rr.Body.String())
	}
}

func TestRegisterRejectsUnknownPaymentMethod(t *testing.T) {
	h := newTestRegistrationHandler()

	body, contentType := wizardForm(t, map[string]string{"payment_method": "cash"})
	req := httptest.NewRequest(http.MethodPost, "/api/programs/507f1f77bcf86cd799439011/register", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"program_id": "507f1f77bcf86cd799439011"})

	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Code = %v, want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "payment_method") {
		t.Errorf("body should name the payment_method field, got %s", rr.Body.String())
	}
}

func TestRegisterRejectsBadProgramID(t *testing.T) {
	h := newTestRegistrationHandler()

	body, contentType := wizardForm(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/programs/not-an-id/register", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"program_id": "not-an-id"})

	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Code = %v, want 400", rr.Code)
	}
}

func TestRegisterWithoutStorageConfigured(t *testing.T) {
	h := &RegistrationHandler{}

	body, contentType := wizardForm(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/programs/507f1f77bcf86cd799439011/register", body)
	req.Header.Set("Content-Type", contentType)
	req = mux.SetURLVars(req, map[string]string{"program_id": "507f1f77bcf86cd799439011"})

	rr := httptest.NewRecorder()
	h.Register(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Code = %v, want 503", rr.Code)
	}
}

func TestEligibilityError(t *testing.T) {
	tests := []struct {
		reason     string
		wantStatus int
		wantBody   string
	}{
		{models.ReasonProgramFull, http.StatusConflict, constants.ErrProgramFull},
		{models.ReasonInactive, http.StatusForbidden, constants.ErrProgramInactive},
		{models.ReasonRegistrationEnded, http.StatusForbidden, constants.ErrRegistrationEnded},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			status, message := eligibilityError(tt.reason)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if message != tt.wantBody {
				t.Errorf("message = %q, want %q", message, tt.wantBody)
			}
		})
	}
}

func TestWriteRegistrationsCSV(t *testing.T) {
	regs := []models.Registration{{
		RegistrationID:          "BAF123456ABCD",
		Name:                    "Sunita Patil",
		Email:                   "sunita@example.org",
		Mobile:                  "9876543210",
		FatherMotherHusbandName: "Ramesh Patil",
		AadharNumber:            "123456789012",
		DateOfBirth:             "1992-04-18",
		Address: models.Address{
			Street:  "14, Shivaji Nagar", // comma forces CSV quoting
			City:    "Pune",
			State:   "Maharashtra",
			PinCode: "411005",
		},
		ProgramTitle: "Organic Farming Basics",
		ProgramFees:  1500,
		Payment: models.Payment{
			TransactionID: "TXN1234567890",
			PaymentMethod: "upi",
		},
		Status:           models.StatusPending,
		RegistrationDate: time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := writeRegistrationsCSV(&buf, regs); err != nil {
		t.Fatalf("writeRegistrationsCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(records))
	}
	if got := len(records[0]); got != 18 {
		t.Errorf("header has %d columns, want 18", got)
	}

	row := records[1]
	if row[0] != "BAF123456ABCD" {
		t.Errorf("registration id column = %q", row[0])
	}
	if row[7] != "14, Shivaji Nagar" {
		t.Errorf("street column = %q, quoting broken", row[7])
	}
	if row[12] != "1500" {
		t.Errorf("fees column = %q, want 1500", row[12])
	}
}

func TestGetConfirmationWrongMethod(t *testing.T) {
	h := newTestRegistrationHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/registrations/BAF123456ABCD", nil)
	req = mux.SetURLVars(req, map[string]string{"registration_id": "BAF123456ABCD"})

	rr := httptest.NewRecorder()
	h.GetConfirmation(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("Code = %v, want 405", rr.Code)
	}
}
