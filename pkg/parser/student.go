package parser

import (
	"tableflip.dev/atas/pkg/command"
	"tableflip.dev/atas/pkg/student"
)

func buildStudent(a *Arguments) (student.Student, error) {
	rawName, _ := a.Value(PrefixName)
	name, err := parseStudentName(rawName)
	if err != nil {
		return student.Student{}, err
	}
	rawMatric, _ := a.Value(PrefixMatriculation)
	matric, err := parseMatriculation(rawMatric)
	if err != nil {
		return student.Student{}, err
	}
	rawEmail, _ := a.Value(PrefixEmail)
	email, err := parseEmail(rawEmail)
	if err != nil {
		return student.Student{}, err
	}
	tags, err := student.ParseTags(a.All(PrefixTag))
	if err != nil {
		return student.Student{}, asParseError(err)
	}
	return student.New(name, matric, email, tags), nil
}

func buildDescriptor(a *Arguments) (command.EditDescriptor, error) {
	var d command.EditDescriptor
	if raw, ok := a.Value(PrefixName); ok {
		name, err := parseStudentName(raw)
		if err != nil {
			return d, err
		}
		d.Name = &name
	}
	if raw, ok := a.Value(PrefixMatriculation); ok {
		matric, err := parseMatriculation(raw)
		if err != nil {
			return d, err
		}
		d.Matriculation = &matric
	}
	if raw, ok := a.Value(PrefixEmail); ok {
		email, err := parseEmail(raw)
		if err != nil {
			return d, err
		}
		d.Email = &email
	}
	if raws := a.All(PrefixTag); len(raws) > 0 {
		tags, err := parseTags(raws)
		if err != nil {
			return d, err
		}
		d.Tags = &tags
	}
	return d, nil
}
