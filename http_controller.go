package manutauth

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/nyaruka/phonenumbers"
)

// RegisterAuthRoutes mounts the auth API on the given router.
func RegisterAuthRoutes[T any](app router.Router[T], opts ...AuthControllerOption) {

	controller := NewAuthController(opts...)

	guard := controller.Auther.ProtectedRoute(
		controller.Auther.MakeClientRouteAuthErrorHandler(false),
	)

	app.
		Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.
		Post(controller.Routes.CreateUser, controller.CreateUser).
		SetName("auth.create-user")

	app.
		Get(controller.Routes.CurrentUser, guard(controller.CurrentUser)).
		SetName("auth.current-user")

	app.
		Put(controller.Routes.ChangePassword, guard(controller.ChangePassword)).
		SetName("auth.change-password")
}

type AuthControllerRoutes struct {
	Login          string
	CreateUser     string
	CurrentUser    string
	ChangePassword string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Repo         RepositoryManager
	Routes       *AuthControllerRoutes
	Auther       *RouteAuthenticator
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:          "/auth/login",
			CreateUser:     "/auth/create_user",
			CurrentUser:    "/auth/current_user",
			ChangePassword: "/auth/change_password",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.ErrorHandler == nil {
		c.ErrorHandler = c.defaultErrHandler
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing RouteAuthenticator in auth controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerRepo(repo RepositoryManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Repo = repo
		return c
	}
}

func WithControllerAuther(auther *RouteAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// LoginRequest payload
type LoginRequest struct {
	Email string `form:"email" json:"email"`
	Senha string `form:"senha" json:"senha"`
}

// GetIdentifier returns the identifier
func (r LoginRequest) GetIdentifier() string {
	return r.Email
}

// GetSenha will return the password
func (r LoginRequest) GetSenha() string {
	return r.Senha
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Senha,
			validation.Required,
		),
	)
}

// TokenResponse is the login success body
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload: ", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"detail": "Error parsing body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload: ", "error", err)
		return ctx.JSON(fiber.StatusUnprocessableEntity, map[string]any{
			"detail":     "Error validating payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	if a.Debug {
		a.Logger.Debug("auth login %s", print.MaybePrettyJSON(payload))
	}

	token, err := a.Auther.Login(ctx, payload)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// CreateFuncionarioPayload is the registration payload
type CreateFuncionarioPayload struct {
	CPF            string     `form:"cpf" json:"cpf"`
	Nome           string     `form:"nome" json:"nome"`
	Email          string     `form:"email" json:"email"`
	Telefone       string     `form:"telefone" json:"telefone"`
	DataNascimento *time.Time `form:"data_nascimento" json:"data_nascimento"`
	Senha          string     `form:"senha" json:"senha"`
	Departamento   string     `form:"departamento" json:"departamento"`
	Cargo          string     `form:"cargo" json:"cargo"`
	InicioTurno    string     `form:"inicio_turno" json:"inicio_turno"`
	FimTurno       string     `form:"fim_turno" json:"fim_turno"`
	Nivel          string     `form:"nivel_de_acesso" json:"nivel_de_acesso"`
}

// Validate will validate the payload
func (r CreateFuncionarioPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.CPF, validation.Required, validation.Length(11, 11), is.Digit),
		validation.Field(&r.Nome, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Telefone, validation.By(ValidateTelefone)),
		validation.Field(&r.Senha, validation.Required, validation.Length(8, 100)),
		validation.Field(&r.Departamento, validation.Length(0, 100)),
		validation.Field(&r.Cargo, validation.Length(0, 100)),
		validation.Field(
			&r.Nivel,
			validation.Required,
			validation.In(
				NivelFuncionario.String(),
				NivelGestor.String(),
				NivelMestre.String(),
			),
		),
	)
}

func (a *AuthController) CreateUser(ctx router.Context) error {
	payload := new(CreateFuncionarioPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("create funcionario parse payload: ", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"detail": "Error parsing body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("create funcionario validate payload: ", "error", err)
		return ctx.JSON(fiber.StatusUnprocessableEntity, map[string]any{
			"detail":     "Error validating payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	var created *Funcionario
	req := RegisterFuncionarioMessage{
		CPF:            payload.CPF,
		Nome:           payload.Nome,
		Email:          payload.Email,
		Telefone:       payload.Telefone,
		DataNascimento: payload.DataNascimento,
		Senha:          payload.Senha,
		Departamento:   payload.Departamento,
		Cargo:          payload.Cargo,
		InicioTurno:    payload.InicioTurno,
		FimTurno:       payload.FimTurno,
		Nivel:          payload.Nivel,
		OnResponse: func(fun *Funcionario) {
			created = fun
		},
	}

	registerFuncionario := NewRegisterFuncionarioHandler(a.Repo)
	if err := registerFuncionario.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("create funcionario error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusCreated, created)
}

func (a *AuthController) CurrentUser(ctx router.Context) error {
	fun, ok := GetRouterFuncionario(ctx, a.Auther.cfg.GetContextKey())
	if !ok {
		return a.ErrorHandler(ctx, ErrFuncionarioNotFound)
	}

	return ctx.JSON(fiber.StatusOK, fun)
}

// ChangePasswordPayload rotates the authenticated funcionario's password
type ChangePasswordPayload struct {
	SenhaAtual string `form:"senha_atual" json:"senha_atual"`
	SenhaNova  string `form:"senha_nova" json:"senha_nova"`
}

// Validate will validate the payload
func (r ChangePasswordPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SenhaAtual, validation.Required),
		validation.Field(&r.SenhaNova, validation.Required, validation.Length(8, 100)),
	)
}

func (a *AuthController) ChangePassword(ctx router.Context) error {
	fun, ok := GetRouterFuncionario(ctx, a.Auther.cfg.GetContextKey())
	if !ok {
		return a.ErrorHandler(ctx, ErrFuncionarioNotFound)
	}

	payload := new(ChangePasswordPayload)
	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("change password parse payload: ", "error", err)
		return ctx.JSON(fiber.StatusBadRequest, map[string]any{
			"detail": "Error parsing body",
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("change password validate payload: ", "error", err)
		return ctx.JSON(fiber.StatusUnprocessableEntity, map[string]any{
			"detail":     "Error validating payload",
			"validation": FormatValidationErrorToMap(err),
		})
	}

	req := ChangePasswordMessage{
		Email:      fun.GetEmail(),
		SenhaAtual: payload.SenhaAtual,
		SenhaNova:  payload.SenhaNova,
	}

	changePassword := NewChangePasswordHandler(a.Repo)
	if err := changePassword.Execute(ctx.Context(), req); err != nil {
		a.Logger.Error("change password error: ", "error", err)
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(fiber.StatusOK, map[string]any{
		"detail": "senha atualizada",
	})
}

func (a *AuthController) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	status := richErr.Code
	if status == 0 {
		status = fiber.StatusInternalServerError
	}

	return c.JSON(status, errorResponse(richErr))
}

// ValidateTelefone accepts an empty value or a parseable, valid BR number.
func ValidateTelefone(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	num, err := phonenumbers.Parse(s, "BR")
	if err != nil {
		return err
	}

	if !phonenumbers.IsValidNumber(num) {
		return errors.New("telefone is not a valid number", errors.CategoryValidation)
	}

	return nil
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field/message map for JSON responses.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}

	if verrs, ok := err.(validation.Errors); ok {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	if err != nil {
		out["error"] = err.Error()
	}

	return out
}
