package entity

type ContactMessage struct {
	BaseSimple
	Name    string `db:"name"`
	Email   string `db:"email"`
	Subject string `db:"subject"`
	Message string `db:"message"`
	IsRead  bool   `db:"is_read"`
	Replied bool   `db:"replied"`
}
