// Package validation 提交前的表单校验：在请求发出之前拦住无效输入，
// 服务端校验仍是最终裁决。
// Package validation checks form input before submission; the server
// remains the final authority.
package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"todomaster/internal/todo"

	"github.com/go-playground/validator/v10"
)

// Validate 共享校验器实例 / Validate is the shared validator instance
var Validate *validator.Validate

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("todo_category", validateCategory); err != nil {
		panic(fmt.Sprintf("failed to register todo_category validator: %v", err))
	}
	if err := Validate.RegisterValidation("todo_priority", validatePriority); err != nil {
		panic(fmt.Sprintf("failed to register todo_priority validator: %v", err))
	}
	if err := Validate.RegisterValidation("date_ymd", validateDateYMD); err != nil {
		panic(fmt.Sprintf("failed to register date_ymd validator: %v", err))
	}
}

// TodoInput 新建/编辑表单的输入 / TodoInput is the create/edit form input
type TodoInput struct {
	Title       string `validate:"required,max=100"`
	Description string `validate:"max=500"`
	Category    string `validate:"omitempty,todo_category"`
	Priority    string `validate:"omitempty,todo_priority"`
	DueDate     string `validate:"omitempty,date_ymd"`
}

// Credentials 登录/注册表单的输入 / Credentials is the auth form input
type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
	// Name 仅注册需要 / Name is only required when registering
	Name string `validate:"omitempty,max=50"`
}

func validateCategory(fl validator.FieldLevel) bool {
	return todo.Category(fl.Field().String()).Valid()
}

func validatePriority(fl validator.FieldLevel) bool {
	return todo.Priority(fl.Field().String()).Valid()
}

func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

// FieldErrors 将校验错误映射为 字段名→tag，供 UI 逐字段提示
// FieldErrors maps validation failures to field→tag for per-field hints
func FieldErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// SanitizeText 去掉首尾空白与控制字符（保留换行和制表符）
// SanitizeText trims whitespace and strips control characters, keeping
// newlines and tabs
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)
	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}
	return sanitized.String()
}
