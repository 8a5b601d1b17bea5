package repository

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"planline/models"
)

func (r *Repository) CreateUser(in models.UserInput) (*models.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("password required on create: %w", ErrInvalid)
	}
	if err := r.checkLogin(in.Login, 0); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleViewer
	}
	user := models.User{
		Login:        in.Login,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		IsActive:     in.IsActive,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

func (r *Repository) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", login, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %q: %w", login, err)
	}
	return &user, nil
}

func (r *Repository) ListUsers(p Page) ([]models.User, int64, error) {
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting users: %w", err)
	}

	users := make([]models.User, 0)
	if err := r.db.Scopes(paginate(p)).Order("login").Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("listing users: %w", err)
	}
	return users, total, nil
}

func (r *Repository) UpdateUser(id uint, in models.UserInput) (*models.User, error) {
	user, err := r.GetUser(id)
	if err != nil {
		return nil, err
	}
	if err := r.checkLogin(in.Login, id); err != nil {
		return nil, err
	}

	user.Login = in.Login
	user.FullName = in.FullName
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.IsActive != nil {
		user.IsActive = in.IsActive
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}
	if err := r.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	return user, nil
}

func (r *Repository) DeleteUser(id uint) error {
	if _, err := r.GetUser(id); err != nil {
		return err
	}
	if err := r.db.Delete(&models.User{}, id).Error; err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return nil
}

func (r *Repository) checkLogin(login string, selfID uint) error {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("login = ? AND id <> ?", login, selfID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("checking login %q: %w", login, err)
	}
	if count > 0 {
		return fmt.Errorf("login %q: %w", login, ErrDuplicate)
	}
	return nil
}
