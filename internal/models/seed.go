package models

import (
	"fmt"

	"gorm.io/gorm"
)

// DefaultProducts 默认商品目录
func DefaultProducts() []Product {
	return []Product{
		{Name: "AMD Ryzen 7 7800X3D", Category: "cpu", Price: MustMoney("449.00"), Stock: 25, Image: "images/ryzen-7800x3d.jpg", Description: "8-core, 16-thread desktop processor with 3D V-Cache"},
		{Name: "Intel Core i5-14600K", Category: "cpu", Price: MustMoney("319.99"), Stock: 40, Image: "images/i5-14600k.jpg", Description: "14-core unlocked desktop processor"},
		{Name: "NVIDIA GeForce RTX 4070 Super", Category: "gpu", Price: MustMoney("599.99"), Stock: 12, Image: "images/rtx-4070-super.jpg", Description: "12GB GDDR6X graphics card"},
		{Name: "AMD Radeon RX 7800 XT", Category: "gpu", Price: MustMoney("499.99"), Stock: 15, Image: "images/rx-7800xt.jpg", Description: "16GB GDDR6 graphics card"},
		{Name: "Corsair Vengeance 32GB DDR5-6000", Category: "memory", Price: MustMoney("109.99"), Stock: 60, Image: "images/vengeance-ddr5.jpg", Description: "2x16GB DDR5 desktop memory kit"},
		{Name: "Samsung 990 PRO 2TB", Category: "storage", Price: MustMoney("169.99"), Stock: 35, Image: "images/990-pro.jpg", Description: "PCIe 4.0 NVMe M.2 SSD"},
		{Name: "ASUS ROG Strix B650-A", Category: "motherboard", Price: MustMoney("229.99"), Stock: 18, Image: "images/b650-a.jpg", Description: "AM5 ATX motherboard with Wi-Fi 6E"},
		{Name: "Corsair RM850x", Category: "psu", Price: MustMoney("139.99"), Stock: 22, Image: "images/rm850x.jpg", Description: "850W 80 PLUS Gold fully modular power supply"},
		{Name: "Noctua NH-D15", Category: "cooling", Price: MustMoney("109.95"), Stock: 30, Image: "images/nh-d15.jpg", Description: "Dual-tower CPU air cooler"},
		{Name: "Lian Li O11 Dynamic EVO", Category: "case", Price: MustMoney("159.99"), Stock: 10, Image: "images/o11-evo.jpg", Description: "Mid-tower ATX case with tempered glass"},
	}
}

// SeedProducts 商品表为空时写入商品，返回写入条数
func SeedProducts(db *gorm.DB, products []Product) (int, error) {
	if db == nil {
		return 0, fmt.Errorf("database handle is nil")
	}
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 || len(products) == 0 {
		return 0, nil
	}
	if err := db.Create(&products).Error; err != nil {
		return 0, err
	}
	return len(products), nil
}
