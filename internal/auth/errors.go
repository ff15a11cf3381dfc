package auth

import (
	"errors"
	"fmt"
)

// Validation errors
var (
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrPasswordTooShort = errors.New("password too short")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingField     = errors.New("missing required field")
	ErrEmailRequired    = errors.New("email is required")
)

// Authentication errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotFound      = errors.New("email not found")
)

// MinPasswordLength is the shortest accepted password
const MinPasswordLength = 6

// User-facing messages
const (
	MsgRegistered = "Cadastro realizado com sucesso!"
	MsgLoggedIn   = "Login realizado."
	MsgVerified   = "E-mail validado com sucesso! Agora você pode fazer login."
)

var messages = map[error]string{
	ErrDuplicateEmail:     "Este e-mail já está cadastrado.",
	ErrPasswordTooShort:   "A senha deve ter pelo menos 6 caracteres.",
	ErrPasswordMismatch:   "As senhas não coincidem.",
	ErrMissingField:       "Preencha todos os campos obrigatórios.",
	ErrEmailRequired:      "Por favor, digite seu e-mail para recuperar a senha.",
	ErrInvalidCredentials: "E-mail ou senha inválidos.",
	ErrEmailNotFound:      "E-mail não encontrado em nossa base.",
}

// Message returns the Portuguese message shown for err, or "" if err is not a
// validation or authentication error
func Message(err error) string {
	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return ""
}

// ResetSentMessage confirms a recovery link was sent to email
func ResetSentMessage(email string) string {
	return fmt.Sprintf("Um link de recuperação foi enviado para %s.", email)
}

// IsValidation reports whether err is a form validation failure
func IsValidation(err error) bool {
	return errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch) ||
		errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrEmailRequired)
}

// IsAuthentication reports whether err is a credential or lookup failure
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrEmailNotFound)
}
