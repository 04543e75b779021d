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

func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerSuite))
}

type CustomerHandlerSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	customerService *service_mocks.MockCustomerServiceInterface
	handler         *CustomerHandler
	e               *echo.Echo
}

func (s *CustomerHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.customerService = service_mocks.NewMockCustomerServiceInterface(s.ctrl)
	s.handler = NewCustomerHandler(s.customerService)
	s.e = echo.New()
	s.e.Validator = NewValidator()
}

func (s *CustomerHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func validRegisterRequest() dto.RegisterCustomerRequest {
	return dto.RegisterCustomerRequest{
		Name:         "Maria Silva",
		CPF:          "52998224725",
		Email:        "maria@example.com",
		Password:     "segredo123",
		AccountTypes: []string{"CORRENTE"},
	}
}

func (s *CustomerHandlerSuite) register(req dto.RegisterCustomerRequest) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(req)

	httpReq := httptest.NewRequest(http.MethodPost, "/", &buf)
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(httpReq, rec)

	s.NoError(s.handler.Register(c))
	return rec
}

func (s *CustomerHandlerSuite) TestRegister() {
	customer := &models.User{
		ID:        uuid.New(),
		Name:      "Maria Silva",
		CPF:       "52998224725",
		Email:     "maria@example.com",
		Role:      models.RoleCustomer,
		Active:    true,
		CreatedAt: time.Now(),
	}
	accounts := []dto.AccountSummary{{
		Number:      "000123-4",
		AccountType: models.AccountTypeChecking,
		Balance:     decimal.Zero,
	}}

	s.customerService.EXPECT().Register(gomock.Any()).Return(customer, accounts, nil)

	rec := s.register(validRegisterRequest())
	s.Equal(http.StatusCreated, rec.Code)

	var response dto.RegisterCustomerResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("52998224725", response.Customer.CPF)
	s.Len(response.Accounts, 1)
}

func (s *CustomerHandlerSuite) TestRegister_DuplicateAccountType() {
	s.customerService.EXPECT().Register(gomock.Any()).
		Return(nil, nil, services.ErrDuplicateAccountType)

	rec := s.register(validRegisterRequest())
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *CustomerHandlerSuite) TestRegister_DeactivatedCPF() {
	s.customerService.EXPECT().Register(gomock.Any()).
		Return(nil, nil, services.ErrCustomerInactive)

	rec := s.register(validRegisterRequest())
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	var response ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("CUSTOMER_002", response.Error.Code)
}

func (s *CustomerHandlerSuite) TestRegister_InvalidCPFRejected() {
	req := validRegisterRequest()
	req.CPF = "11111111111"

	rec := s.register(req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CustomerHandlerSuite) TestRegister_NoAccountTypesRejected() {
	req := validRegisterRequest()
	req.AccountTypes = nil

	rec := s.register(req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CustomerHandlerSuite) TestGetCustomer() {
	customer := &models.User{
		ID:     uuid.New(),
		Name:   "Maria Silva",
		CPF:    "52998224725",
		Role:   models.RoleCustomer,
		Active: true,
	}
	s.customerService.EXPECT().GetCustomer(customer.ID).Return(customer, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("customerId")
	c.SetParamValues(customer.ID.String())

	s.NoError(s.handler.GetCustomer(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *CustomerHandlerSuite) TestGetCustomer_NotFound() {
	customerID := uuid.New()
	s.customerService.EXPECT().GetCustomer(customerID).
		Return(nil, services.ErrCustomerNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("customerId")
	c.SetParamValues(customerID.String())

	s.NoError(s.handler.GetCustomer(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *CustomerHandlerSuite) TestGetCustomerByCPF() {
	customer := &models.User{
		ID:     uuid.New(),
		Name:   "Maria Silva",
		CPF:    "52998224725",
		Role:   models.RoleCustomer,
		Active: true,
	}
	s.customerService.EXPECT().GetCustomerByCPF(customer.CPF).Return(customer, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("cpf")
	c.SetParamValues(customer.CPF)

	s.NoError(s.handler.GetCustomerByCPF(c))
	s.Equal(http.StatusOK, rec.Code)

	var response dto.CustomerResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(customer.ID.String(), response.ID)
}

func (s *CustomerHandlerSuite) TestGetCustomerByCPF_NotFound() {
	s.customerService.EXPECT().GetCustomerByCPF("00000000000").
		Return(nil, services.ErrCustomerNotFound)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("cpf")
	c.SetParamValues("00000000000")

	s.NoError(s.handler.GetCustomerByCPF(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *CustomerHandlerSuite) updateCustomer(customerID string, req dto.UpdateCustomerRequest) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(req)

	httpReq := httptest.NewRequest(http.MethodPatch, "/", &buf)
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(httpReq, rec)
	c.SetParamNames("customerId")
	c.SetParamValues(customerID)

	s.NoError(s.handler.UpdateCustomer(c))
	return rec
}

func (s *CustomerHandlerSuite) TestUpdateCustomer() {
	customerID := uuid.New()
	newName := "Maria Souza"
	updated := &models.User{
		ID:     customerID,
		Name:   newName,
		CPF:    "52998224725",
		Role:   models.RoleCustomer,
		Active: true,
	}

	s.customerService.EXPECT().UpdateCustomer(customerID, gomock.Any()).
		DoAndReturn(func(_ uuid.UUID, req dto.UpdateCustomerRequest) (*models.User, error) {
			s.Require().NotNil(req.Name)
			s.Equal(newName, *req.Name)
			s.Nil(req.Email)
			return updated, nil
		})

	rec := s.updateCustomer(customerID.String(), dto.UpdateCustomerRequest{Name: &newName})
	s.Equal(http.StatusOK, rec.Code)

	var response dto.CustomerResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal(newName, response.Name)
}

func (s *CustomerHandlerSuite) TestUpdateCustomer_InvalidID() {
	newName := "Maria Souza"
	rec := s.updateCustomer("not-a-uuid", dto.UpdateCustomerRequest{Name: &newName})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CustomerHandlerSuite) TestUpdateCustomer_InvalidEmail() {
	bad := "not-an-email"
	rec := s.updateCustomer(uuid.NewString(), dto.UpdateCustomerRequest{Email: &bad})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *CustomerHandlerSuite) TestUpdateCustomer_NotFound() {
	customerID := uuid.New()
	newName := "Maria Souza"
	s.customerService.EXPECT().UpdateCustomer(customerID, gomock.Any()).
		Return(nil, services.ErrCustomerNotFound)

	rec := s.updateCustomer(customerID.String(), dto.UpdateCustomerRequest{Name: &newName})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *CustomerHandlerSuite) TestDeactivate() {
	customerID := uuid.New()
	s.customerService.EXPECT().Deactivate(customerID).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := s.e.NewContext(req, rec)
	c.SetParamNames("customerId")
	c.SetParamValues(customerID.String())

	s.NoError(s.handler.Deactivate(c))
	s.Equal(http.StatusOK, rec.Code)
}
