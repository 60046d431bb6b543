package models

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "funcionario"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// View is the screen the operator last selected.
type View string

const (
	ViewLogin    View = "login"
	ViewPDV      View = "pdv"
	ViewAdmin    View = "admin"
	ViewProducts View = "produtos"
	ViewStock    View = "estoque"
	ViewReports  View = "relatorios"
)

func (v View) IsValid() bool {
	switch v {
	case ViewLogin, ViewPDV, ViewAdmin, ViewProducts, ViewStock, ViewReports:
		return true
	}
	return false
}

// AdminOnly reports whether v belongs to the back office.
func (v View) AdminOnly() bool {
	switch v {
	case ViewAdmin, ViewProducts, ViewStock, ViewReports:
		return true
	}
	return false
}

func DefaultView(role Role) View {
	if role == RoleAdmin {
		return ViewAdmin
	}
	return ViewPDV
}
