package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Браузерный клиент присылает числа из полей ввода строками, поэтому
// числовые поля принимают и число, и строку с числом.

type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s, err := unquoteNumber(b)
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("ожидается число, получено %s", b)
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(b []byte) error {
	s, err := unquoteNumber(b)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("ожидается целое число, получено %s", b)
	}
	*i = flexInt(v)
	return nil
}

func unquoteNumber(b []byte) (string, error) {
	if bytes.HasPrefix(b, []byte(`"`)) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	return string(b), nil
}

type locationRequest struct {
	Province string `json:"province"`
	City     string `json:"city"`
}

type addAttractionRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Open        string     `json:"open"`
	Close       string     `json:"close"`
	Lat         *flexFloat `json:"lat" binding:"required"`
	Long        *flexFloat `json:"long" binding:"required"`
	Category    string     `json:"category"`
	Province    string     `json:"province"`
	City        string     `json:"city"`
}

type updateAttractionRequest struct {
	ID          flexInt `json:"id" binding:"required"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Open        string  `json:"open"`
	Close       string  `json:"close"`
	Category    string  `json:"category"`
}

type attractionIDRequest struct {
	AttractionID flexInt `json:"attractionID" binding:"required"`
}

type countHavingRequest struct {
	MinCount *flexInt `json:"minCount"`
}

type projectRequest struct {
	ID       flexInt  `json:"id" binding:"required"`
	ToSelect []string `json:"toSelect"`
}

type filterExperiencesRequest struct {
	Price      flexFloat `json:"price"`
	Comparison string    `json:"comparison" binding:"required"`
}

type insertDemoRequest struct {
	ID   *flexInt `json:"id" binding:"required"`
	Name string   `json:"name"`
}

type updateDemoNameRequest struct {
	OldName string `json:"oldName" binding:"required"`
	NewName string `json:"newName"`
}

type addUserRequest struct {
	Name string `json:"name" binding:"required"`
}

type completeExperienceRequest struct {
	UserID       flexInt `json:"userID" binding:"required"`
	ExperienceID flexInt `json:"experienceID" binding:"required"`
}
