// Package model はドメインモデルを定義する。
package model

import "time"

// Recipe はユーザーが登録したレシピを表す。
// OwnerIDは作成時にサーバー側で認証済みユーザーから設定され、以後変更されない。
// Dateは作成・更新のたびにサーバー側で再設定される。
type Recipe struct {
	ID          int64
	Name        string
	Category    string
	Description string
	Ingredients []string
	Directions  []string
	Date        time.Time
	OwnerID     int64
}
