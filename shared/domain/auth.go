package domain

type Credentials struct {
	Email    Email
	Password Password
}

// to iterate thru layers: handler -> service -> storage
type RegistrationData struct {
	Name     UserName
	Email    Email
	Password Password
}
