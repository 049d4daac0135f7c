package feed

// Group 같은 상품 키를 공유하는 레코드 묶음입니다. 하나의 원격 상품에 대응합니다.
type Group struct {
	Key     string
	Records []Record
}

// Representative 상품 수준 필드를 읽을 때 사용하는 대표 레코드(첫 번째 레코드)를 반환합니다.
func (g Group) Representative() Record {
	if len(g.Records) == 0 {
		return Record{}
	}
	return g.Records[0]
}

// GroupBy 레코드를 keyField 값(앞뒤 공백 제거)으로 묶습니다.
//
// 그룹의 순서와 그룹 안 레코드의 순서는 모두 처음 등장한 순서를 따릅니다.
// keyField가 헤더에 없으면 SchemaError를 반환합니다.
func GroupBy(header *Header, records []Record, keyField string) ([]Group, error) {
	if err := header.Require(keyField); err != nil {
		return nil, err
	}

	positions := make(map[string]int)
	groups := make([]Group, 0)

	for _, r := range records {
		key := r.Trimmed(keyField)

		pos, ok := positions[key]
		if !ok {
			pos = len(groups)
			positions[key] = pos
			groups = append(groups, Group{Key: key})
		}
		groups[pos].Records = append(groups[pos].Records, r)
	}

	return groups, nil
}
