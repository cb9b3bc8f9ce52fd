package entity

// Sequence backs the document number generators. Each row holds the
// last allocated value for one document kind; increments happen inside
// the document's own transaction so a rollback never burns a gap into
// the visible numbering without also discarding the document.
type Sequence struct {
	Name  string `gorm:"size:50;primary_key" json:"name"`
	Value int64  `gorm:"not null;default:0" json:"value"`
}

// Sequence names for the document number generators
const (
	SequenceOrder   = "order"
	SequenceInvoice = "invoice"
	SequencePayment = "payment"
)

// TableName returns the table name for the Sequence model
func (Sequence) TableName() string {
	return "sequences"
}
