package dto

type CreateUserDTO struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname" binding:"required"`
	Gender  string `json:"gender" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
}

type CreateAddressDTO struct {
	Area           string `json:"area" binding:"required"`
	City           string `json:"city" binding:"required"`
	State          string `json:"state" binding:"required"`
	Pincode        int    `json:"pincode" binding:"required"`
	Landmark       string `json:"landmark"`
	AlternatePhone string `json:"alternatePhone"`
	AddressType    string `json:"addressType" binding:"required,oneof=Home Work Other"`
}
