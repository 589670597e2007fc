package entity

import "maplemarket/pkg/catalog"

// ProductListResponse - ответ со списком товаров
type ProductListResponse struct {
	Products []catalog.Product `json:"products"`
	Total    int               `json:"total"`
}

// CategoryInfo - категория с количеством товаров в каталоге
type CategoryInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ProductCount int    `json:"productCount"`
}

// CategoryListResponse - ответ со списком категорий
type CategoryListResponse struct {
	Categories []CategoryInfo `json:"categories"`
	Total      int            `json:"total"`
}
