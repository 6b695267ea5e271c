package models

import "time"

type UserRole string // Роль пользователя

const (
	RoleAdmin   UserRole = "admin"
	RoleDonor   UserRole = "donor"
	RolePatient UserRole = "patient"
)

// User представляет модель пользователя.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	BloodGroup   BloodGroup `json:"bloodGroup"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	Mobile       string     `json:"mobile"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// RegisterRequest представляет структуру запроса для регистрации пользователя.
type RegisterRequest struct {
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Password   string     `json:"password"`
	Role       UserRole   `json:"role"`
	BloodGroup BloodGroup `json:"bloodGroup"`
	Address    string     `json:"address"`
	City       string     `json:"city"`
	State      string     `json:"state"`
	Mobile     string     `json:"mobile"`
}

// LoginRequest представляет структуру запроса для входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
