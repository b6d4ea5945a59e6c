package tree

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"house_management/internal/domain"
	"house_management/internal/utils"
)

var seedResidents = []string{
	"สมชาย ใจดี", "สมหญิง รักเรียน", "วิชัย กล้าหาญ", "สุดา งามตา", "ประวิทย์ มั่นคง",
	"อรุณี แสงทอง", "ธนากร ศรีสุข", "มาลี พูลผล",
}

var seedUsers = []struct {
	username, password, name string
	role                     domain.Role
}{
	{"admin", "admin1234", "ผู้ดูแลระบบ", domain.RoleAdmin},
	{"water", "water1234", "เจ้าหน้าที่มิเตอร์น้ำ", domain.RoleWater},
	{"electric", "electric1234", "เจ้าหน้าที่มิเตอร์ไฟ", domain.RoleElectric},
}

// Seed returns the built-in dataset used when the remote store is unavailable:
// two buildings of three floors with four rooms each, a few residents and one
// account per role.
func Seed(tariff domain.Tariff) *World {
	w := New(tariff)
	next := 0
	for bi, bname := range []string{"อาคาร A", "อาคาร B"} {
		b := &domain.Building{ID: fmt.Sprintf("b%d", bi+1), Name: bname}
		for fn := 1; fn <= 3; fn++ {
			f := &domain.Floor{ID: fmt.Sprintf("%s-f%d", b.ID, fn), Number: fn}
			for rn := 1; rn <= 4; rn++ {
				typ := domain.RoomSingle
				if rn%2 == 0 {
					typ = domain.RoomDouble
				}
				r := &domain.Room{
					ID:     fmt.Sprintf("%s-r%02d", f.ID, rn),
					Number: fmt.Sprintf("%s%d%02d", string(rune('A'+bi)), fn, rn),
					Type:   typ,
					Bills:  map[string]domain.BillData{},
				}
				if fn == 1 && next < len(seedResidents) {
					for len(r.Residents) < r.Capacity() && next < len(seedResidents) {
						r.Residents = append(r.Residents, domain.Resident{
							ID:   fmt.Sprintf("res-%d", next+1),
							Name: seedResidents[next],
						})
						next++
					}
				}
				f.Rooms = append(f.Rooms, r)
			}
			b.Floors = append(b.Floors, f)
		}
		w.Buildings = append(w.Buildings, b)
	}

	for i, su := range seedUsers {
		hash, err := utils.HashPassword(su.password)
		if err != nil {
			logrus.WithError(err).Error("Failed to hash seed password")
			continue
		}
		w.Users = append(w.Users, &domain.User{
			ID:       fmt.Sprintf("u%d", i+1),
			Username: su.username,
			Password: hash,
			Role:     su.role,
			Name:     su.name,
		})
	}
	return w
}
