package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LanguageEnglish = "English"
	LanguageHindi   = "Hindi"
	LanguageTelugu  = "Telugu"

	// SettingsKey marks the one Settings document
	SettingsKey = "global"
)

type GeneralSettings struct {
	Language             string `bson:"language" json:"language"`
	NotificationsEnabled bool   `bson:"notificationsEnabled" json:"notificationsEnabled"`
}

// Settings is a singleton document
type Settings struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Key        string             `bson:"key,omitempty" json:"-"`
	General    GeneralSettings    `bson:"general" json:"general"`
	Timestamps `bson:",inline"`
}

// DefaultGeneralSettings is what a lazily created Settings document holds
func DefaultGeneralSettings() GeneralSettings {
	return GeneralSettings{Language: LanguageEnglish, NotificationsEnabled: true}
}

// GeneralSettingsPatch is merged shallowly into Settings.General
type GeneralSettingsPatch struct {
	Language             *string `json:"language"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

func (p GeneralSettingsPatch) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Language, validation.NilOrNotEmpty,
			validation.In(LanguageEnglish, LanguageHindi, LanguageTelugu).Error("must be one of: English, Hindi, Telugu")),
	)
}

func (p GeneralSettingsPatch) Apply(g GeneralSettings) GeneralSettings {
	if p.Language != nil {
		g.Language = *p.Language
	}
	if p.NotificationsEnabled != nil {
		g.NotificationsEnabled = *p.NotificationsEnabled
	}
	return g
}
