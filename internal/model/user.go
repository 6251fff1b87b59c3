package model

// User はPOS端末を操作するユーザーを表す。
// Passwordはbcryptハッシュで保持し、APIレスポンスには含めない。
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// UserSummary は一覧表示用のユーザー射影。
// パスワード・氏名・電話番号は含めない。
type UserSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary は一覧表示用の射影を返す。
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}

// UserInput はユーザー作成・更新リクエストの入力。
// nilのフィールドは「未指定」を表す。
type UserInput struct {
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// Validate は作成時の必須フィールドを検証する。
func (in UserInput) Validate() error {
	var m missingFields
	m.require(in.Username != nil, "username")
	m.require(in.Password != nil, "password")
	return m.err()
}

// ApplyTo は指定されたフィールドだけをuに上書きする。
func (in UserInput) ApplyTo(u *User) {
	setString(&u.Username, in.Username)
	setString(&u.Password, in.Password)
	setString(&u.FirstName, in.FirstName)
	setString(&u.LastName, in.LastName)
	setString(&u.Email, in.Email)
	setString(&u.PhoneNumber, in.PhoneNumber)
}

// Contact は顧客・配達員に共通する連絡先フィールド。
type Contact struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// ContactInput は連絡先の作成・更新入力。必須フィールドはない。
type ContactInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

// ApplyTo は指定されたフィールドだけをcに上書きする。
func (in ContactInput) ApplyTo(c *Contact) {
	setString(&c.FirstName, in.FirstName)
	setString(&c.LastName, in.LastName)
	setString(&c.Email, in.Email)
	setString(&c.PhoneNumber, in.PhoneNumber)
}

// Customer は来店顧客を表す。
type Customer struct {
	ID int64 `json:"id"`
	Contact
}

// Deliveryman は配達員を表す。
type Deliveryman struct {
	ID int64 `json:"id"`
	Contact
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
