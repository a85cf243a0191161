package domain

// Province - провинция с геометрией из таблицы provinces_of_china
type Province struct {
	Name     string    `json:"name"`
	Geometry *Geometry `json:"geometry"`
}
