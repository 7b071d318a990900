package orgchart

// ParentMap construye id -> id del padre a partir de pares (id, padre).
// Sirve tanto para cargos como para la jerarquía jefe/subordinado de usuarios.
type ParentMap map[string]string

// WouldCycle indica si colgar id bajo newParent crearía un ciclo, es decir,
// si newParent es id o uno de sus descendientes.
func (m ParentMap) WouldCycle(id, newParent string) bool {
	if newParent == "" {
		return false
	}
	seen := make(map[string]bool)
	for cur := newParent; cur != ""; cur = m[cur] {
		if cur == id {
			return true
		}
		if seen[cur] {
			// ciclo preexistente que no pasa por id
			return false
		}
		seen[cur] = true
	}
	return false
}
