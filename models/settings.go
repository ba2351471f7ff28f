package models

// SettingsKey is the fixed key of the single settings row.
const SettingsKey = "app-settings"

// Watermark corner positions.
const (
	PositionBottomLeft  = "bottom-left"
	PositionBottomRight = "bottom-right"
	PositionTopLeft     = "top-left"
	PositionTopRight    = "top-right"
)

// WatermarkOptions controls which lines are burned into a photo and where.
type WatermarkOptions struct {
	Position           string `json:"position" validate:"oneof=bottom-left bottom-right top-left top-right"`
	IncludeDateTime    bool   `json:"includeDateTime"`
	IncludeCoordinates bool   `json:"includeCoordinates"`
	IncludeHighway     bool   `json:"includeHighway"`
	IncludeDirection   bool   `json:"includeDirection"`
	IncludeLocation    bool   `json:"includeLocation"`
	IncludeUser        bool   `json:"includeUser"`
	IncludeNotes       bool   `json:"includeNotes"`
}

// PhotoQuality is the capture resolution and the stored JPEG compression.
type PhotoQuality struct {
	Resolution  string `json:"resolution" validate:"oneof=1920x1080 1280x720 640x480"`
	Compression int    `json:"compression" validate:"gte=50,lte=100"`
}

// FileNaming holds the file name pattern; see package naming for its tokens.
type FileNaming struct {
	Pattern string `json:"pattern"`
}

// StorageOptions controls automatic backups and the folder layout of shared archives.
type StorageOptions struct {
	AutoBackup        bool `json:"autoBackup"`
	OrganizeByDate    bool `json:"organizeByDate"`
	OrganizeByHighway bool `json:"organizeByHighway"`
}

// AppSettings is the single global configuration row.
type AppSettings struct {
	PhotoQuality PhotoQuality        `json:"photoQuality"`
	Watermark    WatermarkOptions    `json:"watermark"`
	FileNaming   FileNaming          `json:"fileNaming"`
	Storage      StorageOptions      `json:"storage"`
	Highways     []string            `json:"highways" validate:"dive,min=1"`
	Activities   map[string][]string `json:"activities" validate:"dive,keys,min=1,endkeys,dive,min=1"`
}

// DefaultSettings returns a fresh copy of the settings used when none were ever saved.
func DefaultSettings() AppSettings {
	return AppSettings{
		PhotoQuality: PhotoQuality{
			Resolution:  "1920x1080",
			Compression: 85,
		},
		Watermark: WatermarkOptions{
			Position:           PositionBottomLeft,
			IncludeDateTime:    true,
			IncludeCoordinates: true,
			IncludeHighway:     true,
			IncludeDirection:   true,
			IncludeLocation:    true,
			IncludeUser:        false,
			IncludeNotes:       false,
		},
		FileNaming: FileNaming{
			Pattern: "rodovia_sentido_data_hora_ocorre.jpg",
		},
		Storage: StorageOptions{
			AutoBackup:        false,
			OrganizeByDate:    true,
			OrganizeByHighway: false,
		},
		Highways: []string{"SP-310", "SP-333", "SP-326", "SP-351", "SP-323"},
		Activities: map[string][]string{
			"pavimento":     {"Panelo/Buraco", "Trinca tipo jacaré", "Remendo", "Trinca isolada"},
			"drenagem":      {"Reparo de drenagem", "Limpeza de drenagem"},
			"faixa-dominio": {"Limpeza de vegetação", "Manutenção de cerca"},
			"seguranca":     {"Barreira de segurança", "Defensas metálicas"},
			"estruturas":    {"Pontes", "Viadutos", "Obras de arte"},
			"predios":       {"Prédios administrativos", "Pátios de manutenção"},
			"iluminacao":    {"Postes de iluminação", "Sistema elétrico"},
			"sinalizacao":   {"Placas de sinalização", "Pintura de faixas"},
			"operacao":      {"Controle de tráfego", "Monitoramento"},
		},
	}
}

// SettingsUpdate replaces whole settings sections. Nil sections are left untouched.
type SettingsUpdate struct {
	PhotoQuality *PhotoQuality       `json:"photoQuality,omitempty"`
	Watermark    *WatermarkOptions   `json:"watermark,omitempty"`
	FileNaming   *FileNaming         `json:"fileNaming,omitempty"`
	Storage      *StorageOptions     `json:"storage,omitempty"`
	Highways     []string            `json:"highways,omitempty" validate:"omitempty,dive,min=1"`
	Activities   map[string][]string `json:"activities,omitempty" validate:"omitempty,dive,keys,min=1,endkeys,dive,min=1"`
}

// Apply returns s with the present sections of u replaced.
func (u SettingsUpdate) Apply(s AppSettings) AppSettings {
	if u.PhotoQuality != nil {
		s.PhotoQuality = *u.PhotoQuality
	}
	if u.Watermark != nil {
		s.Watermark = *u.Watermark
	}
	if u.FileNaming != nil {
		s.FileNaming = *u.FileNaming
	}
	if u.Storage != nil {
		s.Storage = *u.Storage
	}
	if u.Highways != nil {
		s.Highways = append([]string(nil), u.Highways...)
	}
	if u.Activities != nil {
		activities := make(map[string][]string, len(u.Activities))
		for k, v := range u.Activities {
			activities[k] = append([]string(nil), v...)
		}
		s.Activities = activities
	}
	return s
}

// SubActivities returns the sub-activities configured for activity.
func (s AppSettings) SubActivities(activity string) []string {
	return s.Activities[activity]
}
