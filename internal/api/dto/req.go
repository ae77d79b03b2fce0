package dto

type CreateSiteRequest struct {
	Name         string `json:"name" binding:"required" example:"Farah Cakes"`
	Tagline      string `json:"tagline" example:"Crafting sweet moments, one masterpiece at a time."`
	Logo         string `json:"logo"`
	ThemeColor   string `json:"theme_color" example:"#F7C04A"`
	Phone        string `json:"phone" example:"+256701690526"`
	AdminUser    string `json:"admin_user" example:"admin"`
	AdminPass    string `json:"admin_pass" example:"password"`
	AdminSurname string `json:"admin_surname"`
	CustomDomain string `json:"custom_domain" example:"farahcakes.com"`
	MaxItems     int    `json:"max_items" example:"100"`
}

type UpdateSiteRequest struct {
	Name         string `json:"name" binding:"required"`
	Tagline      string `json:"tagline"`
	Logo         string `json:"logo"`
	ThemeColor   string `json:"theme_color"`
	Phone        string `json:"phone"`
	AdminUser    string `json:"admin_user"`
	AdminPass    string `json:"admin_pass"`
	AdminSurname string `json:"admin_surname"`
	CustomDomain string `json:"custom_domain"`
	MaxItems     int    `json:"max_items"`
}

type LoginRequest struct {
	Site     string `json:"site" binding:"required" example:"farah-cakes"`
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required"`
}

type SaveCakeRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name" example:"Velvet Birthday Dream"`
	Description string `json:"description"`
	Price       int64  `json:"price" example:"110000"`
	Category    string `json:"category" example:"Birthday"`
	ImageURL    string `json:"image_url"`
}

type SaveCouponRequest struct {
	Code            string `json:"code" binding:"required" example:"FARAH10"`
	DiscountPercent int    `json:"discount_percent" binding:"required" example:"10"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required" example:"FARAH10"`
}

type AddCategoryRequest struct {
	Name string `json:"name" binding:"required" example:"Cupcakes"`
}

type ReplaceCategoriesRequest struct {
	Categories []string `json:"categories" binding:"required"`
}

type DescribeCakeRequest struct {
	Name     string `json:"name" binding:"required" example:"Velvet Birthday Dream"`
	Category string `json:"category" example:"Birthday"`
}

type UpdateDefaultsRequest struct {
	Cakes      []SaveCakeRequest `json:"cakes"`
	Categories []string          `json:"categories"`
}
