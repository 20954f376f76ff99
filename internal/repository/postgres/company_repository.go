package postgres

import (
	"context"

	"github.com/spec-kit/enrollment-service/internal/domain"
	"github.com/spec-kit/enrollment-service/internal/repository"
)

const companyColumns = `id, cnpj, username, email, phone, password_hash, created_at`

type companyRepository struct {
	db DBTX
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (cnpj, username, email, phone, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		company.CNPJ,
		company.Username,
		company.Email,
		company.Phone,
		company.PasswordHash,
	).Scan(&company.ID, &company.CreatedAt)
	return mapError(err)
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE id=$1`, id)
}

func (r *companyRepository) GetByUsername(ctx context.Context, username string) (*domain.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE username=$1`, username)
}

func (r *companyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE email=$1`, email)
}

func (r *companyRepository) GetByCNPJ(ctx context.Context, cnpj string) (*domain.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM companies WHERE cnpj=$1`, cnpj)
}

func (r *companyRepository) getOne(ctx context.Context, query string, arg any) (*domain.Company, error) {
	var company domain.Company
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&company.ID,
		&company.CNPJ,
		&company.Username,
		&company.Email,
		&company.Phone,
		&company.PasswordHash,
		&company.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &company, nil
}
