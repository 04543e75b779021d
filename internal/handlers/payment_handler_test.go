package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conta-bancaria/internal/dto"
	"conta-bancaria/internal/models"
	"conta-bancaria/internal/services"
	"conta-bancaria/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

func TestPaymentHandler(t *testing.T) {
	suite.Run(t, new(PaymentHandlerSuite))
}

type PaymentHandlerSuite struct {
	suite.Suite
	ctrl           *gomock.Controller
	paymentService *service_mocks.MockPaymentServiceInterface
	handler        *PaymentHandler
	e              *echo.Echo
}

func (s *PaymentHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.paymentService = service_mocks.NewMockPaymentServiceInterface(s.ctrl)
	s.handler = NewPaymentHandler(s.paymentService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *PaymentHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PaymentHandlerSuite) payBoleto(req dto.PayBoletoRequest, number string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(req)

	httpReq := httptest.NewRequest(http.MethodPost, "/", &buf)
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(httpReq, rec)
	c.SetParamNames("number")
	c.SetParamValues(number)

	s.NoError(s.handler.PayBoleto(c))
	return rec
}

func confirmedPayment(boleto, amount string) *models.Payment {
	return &models.Payment{
		ID:         uuid.New(),
		AccountID:  uuid.New(),
		Boleto:     boleto,
		AmountPaid: decimal.RequireFromString(amount),
		Status:     models.PaymentStatusConfirmed,
		PaidAt:     time.Now(),
	}
}

func (s *PaymentHandlerSuite) TestPayBoleto() {
	s.paymentService.EXPECT().
		PayBoleto("000123-4", gomock.Any()).
		Return(confirmedPayment("23790000000001", "150.00"), nil)

	rec := s.payBoleto(dto.PayBoletoRequest{
		Boleto: "23790000000001",
		Amount: "150.00",
	}, "000123-4")
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.PaymentResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(models.PaymentStatusConfirmed, response.Status)
	s.True(decimal.RequireFromString("150.00").Equal(response.AmountPaid))
}

func (s *PaymentHandlerSuite) TestPayBoleto_AlreadyPaid() {
	s.paymentService.EXPECT().
		PayBoleto("000123-4", gomock.Any()).
		Return(nil, services.ErrBoletoAlreadyPaid)

	rec := s.payBoleto(dto.PayBoletoRequest{
		Boleto: "23790000000001",
		Amount: "150.00",
	}, "000123-4")
	s.Equal(http.StatusConflict, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("PAYMENT_003", response.Error.Code)
}

func (s *PaymentHandlerSuite) TestPayBoleto_InsufficientFunds() {
	s.paymentService.EXPECT().
		PayBoleto("000123-4", gomock.Any()).
		Return(nil, services.ErrInsufficientFunds)

	rec := s.payBoleto(dto.PayBoletoRequest{
		Boleto: "23790000000001",
		Amount: "9999.00",
	}, "000123-4")
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
}

func (s *PaymentHandlerSuite) TestPayBoleto_ShortBoletoRejected() {
	rec := s.payBoleto(dto.PayBoletoRequest{
		Boleto: "123",
		Amount: "10.00",
	}, "000123-4")
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *PaymentHandlerSuite) TestGetPayment() {
	payment := confirmedPayment("23790000000001", "150.00")
	s.paymentService.EXPECT().GetPayment(payment.ID).Return(payment, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("paymentId")
	c.SetParamValues(payment.ID.String())

	s.NoError(s.handler.GetPayment(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *PaymentHandlerSuite) TestGetPayment_InvalidID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("paymentId")
	c.SetParamValues("not-a-uuid")

	s.NoError(s.handler.GetPayment(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *PaymentHandlerSuite) TestListPayments() {
	payments := []models.Payment{*confirmedPayment("23790000000001", "150.00")}
	s.paymentService.EXPECT().
		ListPayments("000123-4", 0, 20).
		Return(payments, int64(1), nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("number")
	c.SetParamValues("000123-4")

	s.NoError(s.handler.ListPayments(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.PaymentListResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(int64(1), response.Total)
	s.Len(response.Payments, 1)
}
