package domain

import "time"

type Category struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

// Product.Price is in the smallest currency unit.
type Product struct {
	ID          int64   `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Price       int64   `db:"price" json:"price"`
	CategoryID  int64   `db:"category_id" json:"category"`
	Image       *string `db:"image" json:"image"`
}

// MaxQuantity caps the quantity of one cart or order line.
const MaxQuantity = 10000

type CartLine struct {
	ID        int64 `db:"id" json:"id"`
	UserID    int64 `db:"user_id" json:"user_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

type Order struct {
	ID         int64       `db:"id" json:"id"`
	UserID     int64       `db:"user_id" json:"user"`
	TotalPrice int64       `db:"total_price" json:"total_price"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
	Lines      []OrderLine `db:"-" json:"products"`
}

// OrderLine.Price is the product price captured when the order was placed.
type OrderLine struct {
	ID        int64   `db:"id" json:"id"`
	OrderID   int64   `db:"order_id" json:"-"`
	ProductID int64   `db:"product_id" json:"-"`
	Product   Product `db:"-" json:"product"`
	Quantity  int     `db:"quantity" json:"quantity"`
	Price     int64   `db:"price" json:"price"`
}

type Wishlist struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Comment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Reply struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CommentID int64     `db:"comment_id" json:"comment_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
