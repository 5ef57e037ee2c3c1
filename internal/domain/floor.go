package domain

// Floor справочные данные этажа. Сервис только читает их.
type Floor struct {
	Number         int
	Name           string
	StartingSeatNo string // первое место диапазона, например "A 001"
	EndingSeatNo   string // последнее место диапазона (включительно)
	Capacity       int    // число мест на этаже или вместимость столовой
}

// MeetingRoom справочные данные переговорной
type MeetingRoom struct {
	ID          int64
	Name        string
	Capacity    int
	FloorNumber int
}
