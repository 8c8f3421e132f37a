package utils

import "errors"

func AuthorizeUser(userRole string, allowedRoles ...string) (bool, error) {
	for _, allowedRole := range allowedRoles {
		if allowedRole == userRole {
			return true, nil
		}
	}
	return false, errors.New("user is not authorized")
}
