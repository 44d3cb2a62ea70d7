package domain

import "time"

// CategoryCode identifies a product category. The set is closed.
type CategoryCode string

const (
	TwinBag    CategoryCode = "TWIN_BAG"
	RemoodBag  CategoryCode = "REMOOD_BAG"
	CloBag     CategoryCode = "CLO_BAG"
	MinimalBag CategoryCode = "MINIMAL_BAG"
	Accessory  CategoryCode = "ACCESSORY"
)

// CategoryCodes lists every valid code in display order.
var CategoryCodes = []CategoryCode{TwinBag, RemoodBag, CloBag, MinimalBag, Accessory}

// CategoryNames maps codes to their display names.
var CategoryNames = map[CategoryCode]string{
	TwinBag:    "TWIN BAG",
	RemoodBag:  "REMOOD BAG",
	CloBag:     "CLO BAG",
	MinimalBag: "MINIMAL BAG",
	Accessory:  "ACCESSORY",
}

func (c CategoryCode) Valid() bool {
	_, ok := CategoryNames[c]
	return ok
}

type Category struct {
	ID        int64        `db:"id" json:"id"`
	Code      CategoryCode `db:"code" json:"code"`
	Name      string       `db:"name" json:"name"`
	CreatedAt time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time    `db:"updated_at" json:"updatedAt"`
}

type Product struct {
	ID           int64        `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Price        int64        `db:"price" json:"price"`
	ImageURL     string       `db:"image_url" json:"imageUrl"`
	CategoryID   int64        `db:"category_id" json:"-"`
	CategoryCode CategoryCode `db:"category_code" json:"categoryCode"`
	CategoryName string       `db:"category_name" json:"categoryName"`
	Description  string       `db:"description" json:"description"`
	Color        string       `db:"color" json:"color"`
	IsNew        bool         `db:"is_new" json:"isNew"`
	IsBest       bool         `db:"is_best" json:"isBest"`
	ViewCount    int64        `db:"view_count" json:"viewCount"`
	SalesCount   int64        `db:"sales_count" json:"salesCount"`
	CreatedAt    time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updatedAt"`
}

// NewProduct is the validated input for inserting a product.
type NewProduct struct {
	Name        string
	Price       int64
	ImageURL    string
	CategoryID  int64
	Description string
	Color       string
	IsNew       bool
	IsBest      bool
}

// MaxLineQuantity bounds both a single add and the merged quantity of a cart line.
const MaxLineQuantity = 999

// CartLine is one cart item joined with the product fields shown in the cart.
type CartLine struct {
	ProductID       int64     `db:"product_id" json:"productId"`
	Quantity        int       `db:"quantity" json:"quantity"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	ProductName     string    `db:"product_name" json:"productName"`
	ProductImageURL string    `db:"product_image_url" json:"productImageUrl"`
	ProductColor    string    `db:"product_color" json:"productColor"`
	ProductPrice    int64     `db:"product_price" json:"productPrice"`
}
