package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

// --- SanitizeStruct tests ---

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := RegisterRequest{
		Email:     "  alice@example.com  ",
		Password:  "pass1234",
		FirstName: " Alice ",
		LastName:  " Doe",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, "Alice", req.FirstName)
	assert.Equal(t, "Doe", req.LastName)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := RegisterRequest{
		Email:     "bob@example.com",
		Password:  "password123",
		FirstName: "<script>alert('x')</script>",
		LastName:  "Smith",
	}
	SanitizeStruct(&req)

	assert.Contains(t, req.FirstName, "&lt;script&gt;")
	assert.NotContains(t, req.FirstName, "<script>")
}

func TestSanitizeStruct_SkipsTaggedFields(t *testing.T) {
	req := LoginRequest{
		Email:    " carol@example.com ",
		Password: "  p<a>ss word  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "carol@example.com", req.Email)
	assert.Equal(t, "  p<a>ss word  ", req.Password)
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	type withPointer struct {
		Note *string
	}
	note := "  hi <b>there</b> "
	req := withPointer{Note: &note}
	SanitizeStruct(&req)

	assert.Equal(t, "hi &lt;b&gt;there&lt;/b&gt;", *req.Note)
}

func TestSanitizeStruct_NilPointerIsNoOp(t *testing.T) {
	type withPointer struct {
		Note *string
	}
	req := withPointer{}
	SanitizeStruct(&req)
	assert.Nil(t, req.Note)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

// --- Custom Validator tests ---

func TestServiceCode_Valid(t *testing.T) {
	cases := []string{
		"PLN",
		"PULSA",
		"VOUCHER_GAME",
		"pdam",
		"TV_LANGGANAN2",
	}
	for _, tc := range cases {
		assert.True(t, serviceCodeRe.MatchString(tc), "expected valid: %s", tc)
	}
}

func TestServiceCode_Invalid(t *testing.T) {
	cases := []string{
		"PL N",
		"PLN<script>",
		"PLN;DROP",
		"",
		"PLN-01",
		"PLN\n",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456",
	}
	for _, tc := range cases {
		assert.False(t, serviceCodeRe.MatchString(tc), "expected invalid: %q", tc)
	}
}

func TestTransactionRequest_Binding(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&TransactionRequest{ServiceCode: "PLN"}))
	assert.Error(t, binding.Validator.ValidateStruct(&TransactionRequest{ServiceCode: "PLN; DROP"}))
	assert.Error(t, binding.Validator.ValidateStruct(&TransactionRequest{}))
}

func TestTopupRequest_Binding(t *testing.T) {
	assert.NoError(t, binding.Validator.ValidateStruct(&TopupRequest{Amount: 1}))
	assert.Error(t, binding.Validator.ValidateStruct(&TopupRequest{Amount: 0}))
	assert.Error(t, binding.Validator.ValidateStruct(&TopupRequest{Amount: -500}))
}

func TestNormalizeServiceCode(t *testing.T) {
	assert.Equal(t, "PLN", NormalizeServiceCode(" pln "))
	assert.Equal(t, "VOUCHER_GAME", NormalizeServiceCode("Voucher_Game"))
}
