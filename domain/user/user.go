/*
Package user 身份服务用户的只读视图

用户由独立的身份服务维护，本服务只通过 CPF 查询其存在性，
不持久化、不修改用户数据。
*/
package user

import "time"

// User is the identity service's user record as seen by this service.
type User struct {
	name         string
	cpf          string
	address      string
	email        string
	phone        string
	dateRegister time.Time
}

// ReconstructionDTO carries the decoded remote record into the domain.
type ReconstructionDTO struct {
	Name         string
	CPF          string
	Address      string
	Email        string
	Phone        string
	DateRegister time.Time
}

// RebuildFromDTO is used by the remote identity client only.
func RebuildFromDTO(dto ReconstructionDTO) *User {
	return &User{
		name:         dto.Name,
		cpf:          dto.CPF,
		address:      dto.Address,
		email:        dto.Email,
		phone:        dto.Phone,
		dateRegister: dto.DateRegister,
	}
}

func (u *User) Name() string { return u.name }
func (u *User) CPF() string { return u.cpf }
func (u *User) Address() string { return u.address }
func (u *User) Email() string { return u.email }
func (u *User) Phone() string { return u.phone }
func (u *User) DateRegister() time.Time { return u.dateRegister }
