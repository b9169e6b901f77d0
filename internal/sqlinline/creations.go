package sqlinline

const QInsertCreation = `--sql e76ab7a0-54d5-480e-870c-c457f2597eca
insert into creations (
  id,
  title,
  image_prompt,
  video_prompt,
  idea,
  character_id,
  provider,
  fallback_reason,
  created_at,
  updated_at
) values (
  $1::uuid,
  $2::text,
  $3::text,
  $4::text,
  $5::text,
  nullif($6::text, '')::uuid,
  $7::text,
  $8::text,
  now(),
  now()
)
returning id::text, title, image_prompt, video_prompt, idea, character_id::text, image_key, provider, fallback_reason, created_at, updated_at;
`

const QSelectCreationByID = `--sql 4b0439c8-ff95-40f4-b8e9-bea54c41a5f1
select id::text, title, image_prompt, video_prompt, idea, character_id::text, image_key, provider, fallback_reason, created_at, updated_at
from creations
where id = $1::uuid
limit 1;
`

const QListCreations = `--sql bcfb70ef-e7aa-4b65-a2be-5b8984ec280e
select id::text, title, image_prompt, video_prompt, idea, character_id::text, image_key, provider, fallback_reason, created_at, updated_at
from creations
order by created_at desc
limit $1::int;
`

const QUpdateCreationScene = `--sql 42101ee5-9b0d-4efb-8477-02079a34f166
update creations
set title = $2::text,
    image_prompt = $3::text,
    video_prompt = $4::text,
    updated_at = now()
where id = $1::uuid
returning id::text, title, image_prompt, video_prompt, idea, character_id::text, image_key, provider, fallback_reason, created_at, updated_at;
`

const QUpdateCreationImage = `--sql e3a1ca63-471b-45ab-8d1d-ac82e4c5c162
update creations
set image_key = $2::text,
    updated_at = now()
where id = $1::uuid;
`

const QDeleteCreation = `--sql 751a5bdf-5c3a-4dc2-a773-c10bbe50ae22
delete from creations
where id = $1::uuid;
`
