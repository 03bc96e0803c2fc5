package seeders

import "ops-portal/pkg/constants"

type departmentSeed struct {
	Key    string
	Name   string
	NameRu string
}

var departmentsData = []departmentSeed{
	{Key: constants.DepartmentIT, Name: "IT", NameRu: "Отдел информационных технологий"},
	{Key: constants.DepartmentDigitalization, Name: "Digitalization", NameRu: "Отдел цифровизации"},
	{Key: constants.DepartmentMedicalEquipment, Name: "Medical Equipment", NameRu: "Отдел медицинского оборудования"},
	{Key: constants.DepartmentEngineering, Name: "Engineering", NameRu: "Инженерная служба"},
}

type roleSeed struct {
	Name string
	Type string
}

var rolesData = []roleSeed{
	{Name: "Сотрудник", Type: "member"},
	{Name: "Руководитель", Type: "lead"},
	{Name: "Администратор", Type: "admin"},
	{Name: "Super Admin", Type: "superadmin"},
}

type stageSeed struct {
	Name      string
	SortOrder float64
}

var stagesData = []stageSeed{
	{Name: "Идея", SortOrder: 1},
	{Name: "Подготовка", SortOrder: 2},
	{Name: "В работе", SortOrder: 3},
	{Name: "Проверка", SortOrder: 4},
	{Name: "Завершено", SortOrder: 5},
}
