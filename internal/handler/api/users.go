package api

import (
	"net/http"

	"github.com/shopeasy/shopeasy/internal/domain"
)

// UserHandler serves registration, login, profile, and admin account
// management endpoints.
type UserHandler struct {
	users domain.UserService
}

func NewUserHandler(users domain.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone"`
}

// Register handles POST /api/users/register.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	if req.Phone != "" {
		updated, err := h.users.UpdateProfile(r.Context(), user.ID, domain.UpdateProfileParams{Phone: &req.Phone})
		if err == nil {
			user = updated
		}
	}
	RespondJSON(w, http.StatusCreated, AuthView{User: NewUserView(user), Token: token})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/users/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, AuthView{User: NewUserView(user), Token: token})
}

// Profile handles GET /api/users/profile.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	profile, err := h.users.GetProfile(r.Context(), user.ID)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewUserView(profile))
}

type updateProfileRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state"`
	PostalCode *string `json:"postalCode"`
	Country    *string `json:"country"`
}

// UpdateProfile handles PUT /api/users/profile. Absent fields are left
// unchanged; a new password is re-hashed by the service.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	var req updateProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user.ID, domain.UpdateProfileParams{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		AddressLine1: req.Address,
		City:         req.City,
		State:        req.State,
		PostalCode:   req.PostalCode,
		Country:      req.Country,
	})
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewUserView(updated))
}

// Get handles GET /api/users/{id}. Admin only.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewUserView(user))
}

type updateUserRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// UpdateRole handles PUT /api/users/{id}. Admin only. Only the role can be
// changed by another account; everything else is the owner's to edit.
func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	admin, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if id == admin.ID {
		RespondError(w, r, domain.Errorf(domain.EINVALID, "user.update_role", "You cannot change your own role"))
		return
	}

	var req updateUserRoleRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, r, err)
		return
	}

	user, err := h.users.UpdateRole(r.Context(), id, domain.UserRole(req.Role))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, NewUserView(user))
}

// List handles GET /api/users. Admin only.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	views := make([]UserView, len(users))
	for i := range users {
		views[i] = NewUserView(&users[i])
	}
	RespondJSON(w, http.StatusOK, views)
}

// Delete handles DELETE /api/users/{id}. Admin only. Admins cannot delete
// their own account.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	admin, err := RequestUser(r)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	id, err := PathUUID(r, "id")
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if id == admin.ID {
		RespondError(w, r, domain.Errorf(domain.EINVALID, "user.delete", "You cannot delete your own account"))
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		RespondError(w, r, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
