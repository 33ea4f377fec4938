package handler

import (
	"time"

	"sichrplace/internal/screening/models"
	"sichrplace/internal/screening/service"
	id "sichrplace/pkg/domain"
	dErrors "sichrplace/pkg/domain-errors"
)

// SubmitRequest is the wire shape of a screening submission.
type SubmitRequest struct {
	TenantID       string                `json:"tenantId"`
	ApartmentID    string                `json:"apartmentId"`
	MonthlyRent    float64               `json:"monthlyRent"`
	ConsentGiven   bool                  `json:"consentGiven"`
	PersonalData   personalDataPayload   `json:"personalData"`
	EmploymentData employmentDataPayload `json:"employmentData"`

	tenantID    id.TenantID
	apartmentID id.ApartmentID
	startDate   time.Time
}

type personalDataPayload struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
}

type employmentDataPayload struct {
	EmploymentType      string   `json:"employmentType"`
	ContractType        string   `json:"contractType"`
	EmployerName        string   `json:"employerName"`
	EmployerAddress     string   `json:"employerAddress"`
	EmployerPhone       string   `json:"employerPhone"`
	EmployerEmail       string   `json:"employerEmail"`
	JobTitle            string   `json:"jobTitle"`
	GrossSalary         float64  `json:"grossSalary"`
	NetSalary           float64  `json:"netSalary"`
	EmploymentStartDate string   `json:"employmentStartDate"`
	PayslipDocuments    []string `json:"payslipDocuments"`
	AdditionalIncome    float64  `json:"additionalIncome"`
	OtherIncomeSource   string   `json:"otherIncomeSource"`
}

// Validate parses the identifier and date fields. Field-level screening
// validation happens in the service, where violations are collected.
func (r *SubmitRequest) Validate() error {
	tenantID, err := id.ParseTenantID(r.TenantID)
	if err != nil {
		return err
	}
	apartmentID, err := id.ParseApartmentID(r.ApartmentID)
	if err != nil {
		return err
	}
	r.tenantID = tenantID
	r.apartmentID = apartmentID

	if r.EmploymentData.EmploymentStartDate != "" {
		start, err := time.Parse("2006-01-02", r.EmploymentData.EmploymentStartDate)
		if err != nil {
			return dErrors.New(dErrors.CodeInvalidInput, "employmentStartDate must be an ISO date")
		}
		r.startDate = start
	}
	return nil
}

// ToInput converts the validated request into the service command.
func (r *SubmitRequest) ToInput() service.SubmitInput {
	return service.SubmitInput{
		TenantID:     r.tenantID,
		ApartmentID:  r.apartmentID,
		MonthlyRent:  r.MonthlyRent,
		ConsentGiven: r.ConsentGiven,
		Personal: models.PersonalData{
			FirstName:   r.PersonalData.FirstName,
			LastName:    r.PersonalData.LastName,
			DateOfBirth: r.PersonalData.DateOfBirth,
			Address:     r.PersonalData.Address,
			City:        r.PersonalData.City,
			PostalCode:  r.PersonalData.PostalCode,
		},
		Employment: models.EmploymentData{
			EmploymentType:      models.EmploymentType(r.EmploymentData.EmploymentType),
			ContractType:        models.ContractType(r.EmploymentData.ContractType),
			EmployerName:        r.EmploymentData.EmployerName,
			EmployerAddress:     r.EmploymentData.EmployerAddress,
			EmployerPhone:       r.EmploymentData.EmployerPhone,
			EmployerEmail:       r.EmploymentData.EmployerEmail,
			JobTitle:            r.EmploymentData.JobTitle,
			GrossSalary:         r.EmploymentData.GrossSalary,
			NetSalary:           r.EmploymentData.NetSalary,
			EmploymentStartDate: r.startDate,
			PayslipDocuments:    r.EmploymentData.PayslipDocuments,
			AdditionalIncome:    r.EmploymentData.AdditionalIncome,
			OtherIncomeSource:   r.EmploymentData.OtherIncomeSource,
		},
	}
}
