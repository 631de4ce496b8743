package mocks

// MockPasswordHasher implements auth.PasswordHasher and
// auth.PasswordVerifier for testing
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// Default values used when functions aren't explicitly defined
	Hashed     string
	HashErr    error
	CompareErr error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return m.Hashed, m.HashErr
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	return m.CompareErr
}
